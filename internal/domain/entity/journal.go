// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a user-authored journal record with mood/energy ratings.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      int       `json:"mood"`   // 1..10
	Energy    int       `json:"energy"` // 1..10
	Tags      []string  `json:"tags"`
	EntryDate string    `json:"entry_date"` // Calendar date "YYYY-MM-DD" as submitted; never timezone-shifted.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalStreak is the server-computed consecutive-day activity counter.
type JournalStreak struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastEntryDate string `json:"last_entry_date,omitempty"` // "YYYY-MM-DD", empty when no entries exist.
}

// JournalCalendarDay aggregates a single day for the calendar view.
type JournalCalendarDay struct {
	Date        string  `json:"date"` // "YYYY-MM-DD"
	EntryCount  int     `json:"entry_count"`
	AverageMood float64 `json:"average_mood"`
}

// TagCount is a tag with its usage count over a window.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// JournalInsights summarizes journal activity over a date window.
type JournalInsights struct {
	EntryCount    int        `json:"entry_count"`
	AverageMood   float64    `json:"average_mood"`
	AverageEnergy float64    `json:"average_energy"`
	TopTags       []TagCount `json:"top_tags"`
	// MoodTrend is second-half average mood minus first-half average mood
	// over the window; positive means improving.
	MoodTrend float64 `json:"mood_trend"`
}

// JournalReminder is a scheduled prompt to write a journal entry.
type JournalReminder struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TimeOfDay string    `json:"time_of_day"` // "HH:MM", 24h clock.
	// DaysOfWeek is a bitmask, bit 0 = Monday .. bit 6 = Sunday.
	DaysOfWeek int       `json:"days_of_week"`
	Message    string    `json:"message"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
