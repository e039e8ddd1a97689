package impl

import (
	"context"
	"log/slog"
	"strings"

	"aevum/config"
	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/domain/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultHistoryWindow = 20
	maxMessageLength     = 4000
	threadTitleMaxLength = 120
)

// companionService implements the CompanionUsecase interface.
type companionService struct {
	companionRepo  repository.CompanionRepository
	replyGenerator service.ReplyGenerator
	historyWindow  int
	logger         *slog.Logger
}

// CompanionServiceParams holds dependencies for CompanionService, injected by Fx.
type CompanionServiceParams struct {
	fx.In

	CompanionRepo  repository.CompanionRepository
	ReplyGenerator service.ReplyGenerator
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCompanionService is the constructor for companionService.
func NewCompanionService(params CompanionServiceParams) usecase.CompanionUsecase {
	historyWindow := defaultHistoryWindow
	if params.Config != nil && params.Config.Companion != nil && params.Config.Companion.MaxHistory > 0 {
		historyWindow = params.Config.Companion.MaxHistory
	}

	return &companionService{
		companionRepo:  params.CompanionRepo,
		replyGenerator: params.ReplyGenerator,
		historyWindow:  historyWindow,
		logger:         params.Logger,
	}
}

func (srv *companionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateThread starts a conversation with a persona.
func (srv *companionService) CreateThread(ctx context.Context, userID uuid.UUID, input *usecase.CreateThreadInput) (*entity.CompanionThread, error) {
	if !entity.ValidPersona(input.Persona) {
		return nil, domainerrors.ErrPersonaInvalid.WithDetails("persona must be one of: coach, nutritionist, listener")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "New conversation"
	}
	if len(title) > threadTitleMaxLength {
		title = title[:threadTitleMaxLength]
	}

	thread := &entity.CompanionThread{
		UserID:  userID,
		Persona: input.Persona,
		Title:   title,
	}

	if err := srv.companionRepo.CreateThread(ctx, thread); err != nil {
		return nil, errors.Wrap(err, "failed to create companion thread")
	}

	srv.log(ctx).Debug("Companion thread created", slog.Any("userID", userID), slog.String("persona", input.Persona))

	return thread, nil
}

// ListThreads returns the user's threads, most recently active first.
func (srv *companionService) ListThreads(ctx context.Context, userID uuid.UUID) ([]*entity.CompanionThread, error) {
	threads, err := srv.companionRepo.ListThreadsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list companion threads")
	}

	return threads, nil
}

// GetThread returns a thread with its messages in sequence order.
func (srv *companionService) GetThread(ctx context.Context, userID, threadID uuid.UUID) (*entity.CompanionThread, error) {
	thread, err := srv.companionRepo.FindThreadWithMessages(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrThreadNotFound) {
			return nil, domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
		}

		return nil, errors.Wrap(err, "failed to find companion thread")
	}

	// Another user's thread is reported as missing, not forbidden.
	if thread.UserID != userID {
		return nil, domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
	}

	return thread, nil
}

// DeleteThread removes a thread and its messages.
func (srv *companionService) DeleteThread(ctx context.Context, userID, threadID uuid.UUID) error {
	thread, err := srv.companionRepo.FindThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrThreadNotFound) {
			return domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
		}

		return errors.Wrap(err, "failed to find companion thread")
	}
	if thread.UserID != userID {
		return domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
	}

	if err := srv.companionRepo.DeleteThread(ctx, threadID); err != nil {
		return errors.Wrap(err, "failed to delete companion thread")
	}

	srv.log(ctx).Debug("Companion thread deleted", slog.Any("userID", userID), slog.Any("threadID", threadID))

	return nil
}

// SendMessage appends the user message, generates the assistant reply, and
// persists both in order.
func (srv *companionService) SendMessage(ctx context.Context, userID, threadID uuid.UUID, input *usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message content is required")
	}
	if len(content) > maxMessageLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message content is too long")
	}

	thread, err := srv.companionRepo.FindThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrThreadNotFound) {
			return nil, domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
		}

		return nil, errors.Wrap(err, "failed to find companion thread")
	}
	if thread.UserID != userID {
		return nil, domainerrors.ErrThreadNotFound.WrapMessage("thread not found")
	}

	// History is loaded before the new message so the generator sees the
	// conversation as it was.
	history, err := srv.companionRepo.ListRecentMessages(ctx, threadID, srv.historyWindow)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation history")
	}

	userMessage := &entity.CompanionMessage{
		ThreadID: threadID,
		Sender:   entity.SenderUser,
		Content:  content,
	}
	if err := srv.companionRepo.AppendMessage(ctx, userMessage); err != nil {
		return nil, errors.Wrap(err, "failed to append user message")
	}

	reply, err := srv.replyGenerator.GenerateReply(ctx, thread.Persona, history, content)
	if err != nil {
		// The generator falls back internally; an error here is unexpected.
		srv.log(ctx).Error("Reply generation failed", slog.Any("threadID", threadID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate companion reply")
	}

	assistantMessage := &entity.CompanionMessage{
		ThreadID: threadID,
		Sender:   entity.SenderAssistant,
		Content:  reply,
	}
	if err := srv.companionRepo.AppendMessage(ctx, assistantMessage); err != nil {
		return nil, errors.Wrap(err, "failed to append assistant message")
	}

	return &usecase.SendMessageOutput{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	}, nil
}
