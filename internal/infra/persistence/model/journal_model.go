package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntryModel mirrors the 'journal_entries' table.
// Tags are kept as a JSONB array; entry_date is the user-facing day key.
// The date column round-trips through the driver as time.Time; the mappers
// own the conversion to the API's YYYY-MM-DD form.
type JournalEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_user_date"`
	Title     string    `gorm:"type:varchar(255)"`
	Content   string    `gorm:"type:text;not null"`
	Mood      int       `gorm:"not null"`
	Energy    int       `gorm:"not null"`
	Tags      []string  `gorm:"type:jsonb;serializer:json"`
	EntryDate time.Time `gorm:"type:date;not null;index:idx_journal_user_date"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// JournalReminderModel mirrors the 'journal_reminders' table.
// DaysOfWeek is a bitmask with bit 0 = Monday.
type JournalReminderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TimeOfDay  string    `gorm:"type:varchar(5);not null"`
	DaysOfWeek int       `gorm:"not null;default:127"`
	Message    string    `gorm:"type:varchar(255)"`
	Enabled    bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (JournalReminderModel) TableName() string {
	return "journal_reminders"
}
