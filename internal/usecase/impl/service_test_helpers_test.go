package impl

import (
	"io"
	"log/slog"
	"testing"

	"aevum/config"
	domainerrors "aevum/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			MaxActiveSessions: maxActiveSessions,
		},
	}
}

// requireErrorCode asserts that err carries the given business error code.
// Detail-carrying errors are distinct values, so errors.Is against the
// catalog sentinel does not apply to them.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an application error, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}
