package notification

import (
	"context"
	"log/slog"

	"aevum/internal/domain/service"
)

// noopService drops notifications when Firebase is not configured.
type noopService struct {
	logger *slog.Logger
}

// NewNoopService creates a notification service that only logs.
func NewNoopService(logger *slog.Logger) service.NotificationService {
	return &noopService{logger: logger}
}

func (s *noopService) SendSingleNotification(_ context.Context, token, title, _ string, _ map[string]string) error {
	s.logger.Debug("Notification dropped, Firebase not configured", slog.String("title", title))

	return nil
}

func (s *noopService) SendBatchNotification(_ context.Context, tokens []string, title, _ string, _ map[string]string) (int, int, []string, error) {
	s.logger.Debug("Batch notification dropped, Firebase not configured",
		slog.String("title", title), slog.Int("tokens", len(tokens)))

	return 0, len(tokens), nil, nil
}
