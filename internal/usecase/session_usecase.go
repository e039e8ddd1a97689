// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionInfo describes one active session (refresh token) for display.
type SessionInfo struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	// GetActiveSessions lists the user's active (non-expired) sessions.
	GetActiveSessions(ctx context.Context, userID uuid.UUID) ([]*SessionInfo, error)

	// RevokeSession ends a single session. Sessions belonging to another
	// user are reported as not found.
	RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error

	// RevokeAllSessions ends every session of the user (logout everywhere).
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error

	// CleanupExpiredSessions removes expired refresh tokens. Intended for
	// periodic invocation.
	CleanupExpiredSessions(ctx context.Context) error
}
