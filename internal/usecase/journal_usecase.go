package usecase

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateJournalEntryInput defines the data for a new journal entry.
type CreateJournalEntryInput struct {
	Title     string
	Content   string
	Mood      int // 1..10
	Energy    int // 1..10
	Tags      []string
	EntryDate string // "YYYY-MM-DD"; defaults to today when empty.
}

// UpdateJournalEntryInput defines the data for a full entry update.
type UpdateJournalEntryInput struct {
	Title     string
	Content   string
	Mood      int
	Energy    int
	Tags      []string
	EntryDate string
}

// ListJournalEntriesInput filters and pages journal entry listings.
type ListJournalEntriesInput struct {
	From     string // Inclusive "YYYY-MM-DD" lower bound.
	To       string // Inclusive upper bound.
	Tag      string
	Page     int
	PageSize int
}

// JournalInsightsInput bounds the insights window. Both empty means the
// last 30 days.
type JournalInsightsInput struct {
	From string
	To   string
}

// JournalReminderInput defines the data for creating or updating a reminder.
type JournalReminderInput struct {
	TimeOfDay  string // "HH:MM", 24h clock.
	DaysOfWeek int    // Bitmask, bit 0 = Monday.
	Message    string
	Enabled    bool
}

// --- Output DTOs ---

// JournalEntryListOutput returns one page of journal entries.
type JournalEntryListOutput struct {
	Entries  []*entity.JournalEntry
	Total    int64
	Page     int
	PageSize int
}

// JournalUsecase defines the interface for journal business operations.
type JournalUsecase interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, input *CreateJournalEntryInput) (*entity.JournalEntry, error)
	GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*entity.JournalEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, input *ListJournalEntriesInput) (*JournalEntryListOutput, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, input *UpdateJournalEntryInput) (*entity.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error

	// GetCalendar aggregates per-day entry counts and average mood for a
	// month given as "YYYY-MM".
	GetCalendar(ctx context.Context, userID uuid.UUID, month string) ([]*entity.JournalCalendarDay, error)

	// GetStreak computes the current and longest consecutive-day streaks.
	GetStreak(ctx context.Context, userID uuid.UUID) (*entity.JournalStreak, error)

	// GetInsights summarizes activity over a date window.
	GetInsights(ctx context.Context, userID uuid.UUID, input *JournalInsightsInput) (*entity.JournalInsights, error)

	CreateReminder(ctx context.Context, userID uuid.UUID, input *JournalReminderInput) (*entity.JournalReminder, error)
	ListReminders(ctx context.Context, userID uuid.UUID) ([]*entity.JournalReminder, error)
	UpdateReminder(ctx context.Context, userID, reminderID uuid.UUID, input *JournalReminderInput) (*entity.JournalReminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID uuid.UUID) error
}
