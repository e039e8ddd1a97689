// Package companion produces assistant replies for companion threads,
// either through an external chat-completions API or local templates.
package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aevum/config"
	"aevum/internal/domain/entity"
	"aevum/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxHistory = 20
)

// personaPrompts define the system prompt per persona.
var personaPrompts = map[string]string{
	entity.PersonaCoach:        "You are a supportive health coach for the Aevum app. Give short, practical, encouraging guidance about habits, movement and motivation. Never give medical diagnoses.",
	entity.PersonaNutritionist: "You are a friendly nutrition guide for the Aevum app. Give short, practical advice about food and eating patterns. Never give medical diagnoses.",
	entity.PersonaListener:     "You are a calm, empathetic listener for the Aevum app. Reflect what the user shares and ask gentle follow-up questions. Never give medical diagnoses.",
}

// NewReplyGenerator creates a reply generator from config. Without a
// configured provider it returns the local template generator.
func NewReplyGenerator(cfg *config.Config, logger *slog.Logger) service.ReplyGenerator {
	if cfg.Companion == nil || cfg.Companion.BaseURL == "" {
		logger.Info("Companion provider not configured, using local reply generator")

		return NewLocalReplyGenerator()
	}

	timeout := cfg.Companion.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxHistory := cfg.Companion.MaxHistory
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}

	return &httpReplyGenerator{
		baseURL:    strings.TrimRight(cfg.Companion.BaseURL, "/"),
		apiKey:     cfg.Companion.APIKey,
		model:      cfg.Companion.Model,
		maxHistory: maxHistory,
		httpClient: &http.Client{Timeout: timeout},
		fallback:   NewLocalReplyGenerator(),
		logger:     logger,
	}
}

// httpReplyGenerator calls a chat-completions style API.
type httpReplyGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	maxHistory int
	httpClient *http.Client
	fallback   service.ReplyGenerator
	logger     *slog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReply asks the configured provider for a reply. On provider
// failure it falls back to the local template generator so the thread
// never stalls on an upstream outage.
func (g *httpReplyGenerator) GenerateReply(ctx context.Context, persona string, history []*entity.CompanionMessage, userMessage string) (string, error) {
	reply, err := g.callProvider(ctx, persona, history, userMessage)
	if err != nil {
		g.logger.WarnContext(ctx, "companion provider failed, using local fallback",
			slog.String("persona", persona),
			slog.Any("error", err),
		)

		return g.fallback.GenerateReply(ctx, persona, history, userMessage)
	}

	return reply, nil
}

func (g *httpReplyGenerator) callProvider(ctx context.Context, persona string, history []*entity.CompanionMessage, userMessage string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)

	prompt, ok := personaPrompts[persona]
	if !ok {
		prompt = personaPrompts[entity.PersonaListener]
	}
	messages = append(messages, chatMessage{Role: "system", Content: prompt})

	// Trim history to the most recent messages.
	if len(history) > g.maxHistory {
		history = history[len(history)-g.maxHistory:]
	}
	for _, msg := range history {
		role := "user"
		if msg.Sender == entity.SenderAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	payload, err := json.Marshal(chatRequest{Model: g.model, Messages: messages})
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "companion provider request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if resp.StatusCode/100 != 2 {
		return "", errors.Errorf("companion provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode companion provider response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("companion provider returned no choices")
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("companion provider returned an empty reply")
	}

	return reply, nil
}

// localReplyGenerator produces template replies without any external calls.
// It keeps development and tests self-contained.
type localReplyGenerator struct{}

// NewLocalReplyGenerator creates the offline template generator.
func NewLocalReplyGenerator() service.ReplyGenerator {
	return &localReplyGenerator{}
}

func (g *localReplyGenerator) GenerateReply(_ context.Context, persona string, _ []*entity.CompanionMessage, userMessage string) (string, error) {
	topic := summarizeTopic(userMessage)

	switch persona {
	case entity.PersonaCoach:
		return fmt.Sprintf("Thanks for sharing that about %s. Small consistent steps beat big occasional ones. What is one tiny action you could take today?", topic), nil
	case entity.PersonaNutritionist:
		return fmt.Sprintf("Noted on %s. A good place to start is looking at one regular meal and asking what a slightly better version of it would look like. What does a typical day of eating look like for you?", topic), nil
	default:
		return fmt.Sprintf("It sounds like %s has been on your mind. I'm here to listen. Would you like to tell me more about how that has felt?", topic), nil
	}
}

// summarizeTopic extracts a short echo of the user's message for templates.
func summarizeTopic(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "that"
	}

	words := strings.Fields(trimmed)
	if len(words) > 6 {
		words = words[:6]
	}

	return strings.ToLower(strings.TrimRight(strings.Join(words, " "), ".!?"))
}
