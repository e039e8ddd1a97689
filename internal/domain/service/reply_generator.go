package service

import (
	"context"

	"aevum/internal/domain/entity"
)

// ReplyGenerator defines the interface for producing companion assistant replies.
// Implementations may call an external model API or fall back to local templates.
type ReplyGenerator interface {
	// GenerateReply produces an assistant reply for the latest user message,
	// given the thread persona and recent conversation history (oldest first).
	GenerateReply(ctx context.Context, persona string, history []*entity.CompanionMessage, userMessage string) (string, error)
}
