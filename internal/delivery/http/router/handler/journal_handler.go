package handler

import (
	"log/slog"
	"net/http"

	"aevum/internal/delivery/http/response"
	"aevum/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// JournalHandler holds dependencies for journal handlers.
type JournalHandler struct {
	uc     usecase.JournalUsecase
	logger *slog.Logger
}

// NewJournalHandler is the constructor for JournalHandler, injected by Fx.
func NewJournalHandler(uc usecase.JournalUsecase, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateEntry creates a journal entry for the current user.
func (h *JournalHandler) CreateEntry(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateJournalEntryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid journal entry input")
	}

	entry, err := h.uc.CreateEntry(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, entry, "Entry created successfully")
}

// ListEntries returns the user's entries, newest first, with optional
// date-range and tag filters.
func (h *JournalHandler) ListEntries(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := &usecase.ListJournalEntriesInput{
		From:     c.QueryParam("from"),
		To:       c.QueryParam("to"),
		Tag:      c.QueryParam("tag"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	output, err := h.uc.ListEntries(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Entries retrieved successfully")
}

// GetEntry returns one of the user's entries.
func (h *JournalHandler) GetEntry(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	entryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	entry, err := h.uc.GetEntry(c.Request().Context(), userID, entryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entry, "Entry retrieved successfully")
}

// UpdateEntry replaces an entry's content.
func (h *JournalHandler) UpdateEntry(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	entryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateJournalEntryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid journal entry input")
	}

	entry, err := h.uc.UpdateEntry(c.Request().Context(), userID, entryID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entry, "Entry updated successfully")
}

// DeleteEntry removes one of the user's entries.
func (h *JournalHandler) DeleteEntry(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	entryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteEntry(c.Request().Context(), userID, entryID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Entry deleted"}, "Entry deleted successfully")
}

// GetCalendar aggregates per-day counts and average mood for a month.
func (h *JournalHandler) GetCalendar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	days, err := h.uc.GetCalendar(c.Request().Context(), userID, c.QueryParam("month"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, days, "Calendar retrieved successfully")
}

// GetStreak returns the user's current and longest journaling streaks.
func (h *JournalHandler) GetStreak(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	streak, err := h.uc.GetStreak(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, streak, "Streak retrieved successfully")
}

// GetInsights summarizes journaling activity over a date window.
func (h *JournalHandler) GetInsights(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := &usecase.JournalInsightsInput{
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	}

	insights, err := h.uc.GetInsights(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, insights, "Insights retrieved successfully")
}

// CreateReminder creates a journal reminder.
func (h *JournalHandler) CreateReminder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.JournalReminderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}

	reminder, err := h.uc.CreateReminder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, reminder, "Reminder created successfully")
}

// ListReminders returns the user's reminders.
func (h *JournalHandler) ListReminders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reminders, err := h.uc.ListReminders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reminders, "Reminders retrieved successfully")
}

// UpdateReminder replaces a reminder's schedule.
func (h *JournalHandler) UpdateReminder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reminderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.JournalReminderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}

	reminder, err := h.uc.UpdateReminder(c.Request().Context(), userID, reminderID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reminder, "Reminder updated successfully")
}

// DeleteReminder removes a reminder.
func (h *JournalHandler) DeleteReminder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reminderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReminder(c.Request().Context(), userID, reminderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Reminder deleted"}, "Reminder deleted successfully")
}
