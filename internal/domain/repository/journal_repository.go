// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"aevum/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for journal persistence.
var (
	// ErrJournalEntryNotFound is returned when a journal entry is not found.
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	// ErrReminderNotFound is returned when a journal reminder is not found.
	ErrReminderNotFound = errors.New("journal reminder not found")
)

// JournalEntryFilter narrows journal entry listings.
type JournalEntryFilter struct {
	From   string // Inclusive lower bound on entry_date ("YYYY-MM-DD"), empty for none.
	To     string // Inclusive upper bound on entry_date, empty for none.
	Tag    string // Entries carrying this tag when non-empty.
	Limit  int
	Offset int
}

// JournalRepository defines persistence operations for journal entries and reminders.
type JournalRepository interface {
	// CreateEntry persists a new journal entry.
	CreateEntry(ctx context.Context, entry *entity.JournalEntry) error

	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)

	// ListEntriesByUser returns a user's entries newest-first plus the total count.
	ListEntriesByUser(ctx context.Context, userID uuid.UUID, filter JournalEntryFilter) ([]*entity.JournalEntry, int64, error)

	// UpdateEntry persists mutations on an entry.
	UpdateEntry(ctx context.Context, entry *entity.JournalEntry) error

	// DeleteEntry removes an entry by ID.
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// ListEntryDatesByUser returns the distinct entry dates for a user,
	// descending. Used for streak computation.
	ListEntryDatesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)

	// CreateReminder persists a new journal reminder.
	CreateReminder(ctx context.Context, reminder *entity.JournalReminder) error

	// ListRemindersByUser returns a user's reminders.
	ListRemindersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JournalReminder, error)

	// FindReminderByID retrieves a single reminder.
	FindReminderByID(ctx context.Context, id uuid.UUID) (*entity.JournalReminder, error)

	// UpdateReminder persists mutations on a reminder.
	UpdateReminder(ctx context.Context, reminder *entity.JournalReminder) error

	// DeleteReminder removes a reminder by ID.
	DeleteReminder(ctx context.Context, id uuid.UUID) error
}
