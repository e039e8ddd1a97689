package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanionThreadModel mirrors the 'companion_threads' table.
type CompanionThreadModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Persona       string    `gorm:"type:varchar(30);not null"`
	Title         string    `gorm:"type:varchar(255)"`
	LastMessageAt time.Time `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Messages []*CompanionMessageModel `gorm:"foreignKey:ThreadID"`
}

// TableName explicitly sets the table name for GORM.
func (CompanionThreadModel) TableName() string {
	return "companion_threads"
}

// CompanionMessageModel mirrors the 'companion_messages' table.
// Sequence orders messages within a thread.
type CompanionMessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ThreadID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_companion_thread_seq"`
	Sender    string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	Sequence  int       `gorm:"not null;uniqueIndex:idx_companion_thread_seq"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CompanionMessageModel) TableName() string {
	return "companion_messages"
}
