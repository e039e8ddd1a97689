package middleware

import (
	"log/slog"

	deliverycontext "aevum/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags every request with an ID and hangs a
// request-scoped logger off the context so lower layers can log with it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Process resolves the request ID, echoes it back in the response header,
// and installs the per-request logger.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := resolveRequestID(c)

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(slog.String("request_id", requestID)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// resolveRequestID honors a client-supplied header so IDs survive across
// service hops; otherwise a fresh one is minted.
func resolveRequestID(c echo.Context) string {
	if requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}
