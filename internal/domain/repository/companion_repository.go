// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrThreadNotFound is returned when a companion thread is not found.
var ErrThreadNotFound = errors.New("companion thread not found")

// CompanionRepository defines persistence operations for companion threads and messages.
type CompanionRepository interface {
	// CreateThread persists a new thread.
	CreateThread(ctx context.Context, thread *entity.CompanionThread) error

	// FindThreadByID retrieves a thread without its messages.
	FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error)

	// FindThreadWithMessages retrieves a thread with messages ordered by sequence.
	FindThreadWithMessages(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error)

	// ListThreadsByUser returns a user's threads, most recently active first.
	ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CompanionThread, error)

	// DeleteThread removes a thread and its messages.
	DeleteThread(ctx context.Context, id uuid.UUID) error

	// AppendMessage persists a message with the next sequence number for its
	// thread and bumps the thread's last-activity timestamp.
	AppendMessage(ctx context.Context, message *entity.CompanionMessage) error

	// ListRecentMessages returns the last n messages of a thread in sequence order.
	ListRecentMessages(ctx context.Context, threadID uuid.UUID, n int) ([]*entity.CompanionMessage, error)
}
