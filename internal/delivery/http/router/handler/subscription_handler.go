package handler

import (
	"log/slog"
	"net/http"

	"aevum/internal/delivery/http/response"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SubscriptionHandler holds dependencies for subscription handlers.
type SubscriptionHandler struct {
	uc     usecase.SubscriptionUsecase
	logger *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler, injected by Fx.
func NewSubscriptionHandler(uc usecase.SubscriptionUsecase, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListPlans returns the plan catalog.
func (h *SubscriptionHandler) ListPlans(c echo.Context) error {
	plans, err := h.uc.ListPlans(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, plans, "Plans retrieved successfully")
}

// GetCurrent returns the user's active subscription.
func (h *SubscriptionHandler) GetCurrent(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sub, err := h.uc.GetCurrentSubscription(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sub, "Subscription retrieved successfully")
}

// Subscribe starts a subscription to a plan, replacing any active one.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var body struct {
		PlanID uuid.UUID `json:"plan_id"`
	}
	if err := c.Bind(&body); err != nil || body.PlanID == uuid.Nil {
		return response.BindingError(c, "INVALID_INPUT", "plan_id is required")
	}

	sub, err := h.uc.Subscribe(c.Request().Context(), userID, body.PlanID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sub, "Subscribed successfully")
}

// Cancel cancels the user's subscription at period end.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sub, err := h.uc.CancelSubscription(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sub, "Subscription cancelled successfully")
}
