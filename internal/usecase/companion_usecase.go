package usecase

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateThreadInput defines the data for starting a companion conversation.
type CreateThreadInput struct {
	Persona string // One of the known personas.
	Title   string
}

// SendMessageInput carries one user message for a thread.
type SendMessageInput struct {
	Content string
}

// SendMessageOutput returns both sides of one conversational turn.
type SendMessageOutput struct {
	UserMessage      *entity.CompanionMessage `json:"user_message"`
	AssistantMessage *entity.CompanionMessage `json:"assistant_message"`
}

// CompanionUsecase defines the interface for companion chat operations.
type CompanionUsecase interface {
	CreateThread(ctx context.Context, userID uuid.UUID, input *CreateThreadInput) (*entity.CompanionThread, error)
	ListThreads(ctx context.Context, userID uuid.UUID) ([]*entity.CompanionThread, error)

	// GetThread returns a thread with its messages in sequence order.
	GetThread(ctx context.Context, userID, threadID uuid.UUID) (*entity.CompanionThread, error)

	DeleteThread(ctx context.Context, userID, threadID uuid.UUID) error

	// SendMessage appends the user message, generates the assistant reply,
	// persists both in order, and returns the pair.
	SendMessage(ctx context.Context, userID, threadID uuid.UUID, input *SendMessageInput) (*SendMessageOutput, error)
}
