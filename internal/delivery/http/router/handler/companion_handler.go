package handler

import (
	"log/slog"
	"net/http"

	"aevum/internal/delivery/http/response"
	"aevum/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CompanionHandler holds dependencies for companion chat handlers.
type CompanionHandler struct {
	uc     usecase.CompanionUsecase
	logger *slog.Logger
}

// NewCompanionHandler is the constructor for CompanionHandler, injected by Fx.
func NewCompanionHandler(uc usecase.CompanionUsecase, logger *slog.Logger) *CompanionHandler {
	return &CompanionHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateThread starts a conversation with a persona.
func (h *CompanionHandler) CreateThread(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateThreadInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid thread input")
	}

	thread, err := h.uc.CreateThread(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, thread, "Thread created successfully")
}

// ListThreads returns the user's threads, most recently active first.
func (h *CompanionHandler) ListThreads(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	threads, err := h.uc.ListThreads(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, threads, "Threads retrieved successfully")
}

// GetThread returns a thread with its ordered messages.
func (h *CompanionHandler) GetThread(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	thread, err := h.uc.GetThread(c.Request().Context(), userID, threadID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, thread, "Thread retrieved successfully")
}

// DeleteThread removes a thread and its messages.
func (h *CompanionHandler) DeleteThread(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteThread(c.Request().Context(), userID, threadID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Thread deleted"}, "Thread deleted successfully")
}

// SendMessage appends a user message and returns it together with the
// generated assistant reply.
func (h *CompanionHandler) SendMessage(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	threadID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}

	output, err := h.uc.SendMessage(c.Request().Context(), userID, threadID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Message sent successfully")
}
