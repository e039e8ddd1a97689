// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when no authentication record matches.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines persistence operations for login credentials.
type AuthRepository interface {
	// FindAuthentication retrieves a credential by provider and provider-side user ID
	// (the email address for the "email" provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential for a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// UpdatePasswordHash replaces the stored bcrypt hash for an email credential.
	UpdatePasswordHash(ctx context.Context, authID uuid.UUID, passwordHash string) error
}
