// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message sender roles inside a companion thread.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Companion personas members can chat with.
const (
	PersonaCoach        = "coach"
	PersonaNutritionist = "nutritionist"
	PersonaListener     = "listener"
)

// ValidPersona reports whether p names a known companion persona.
func ValidPersona(p string) bool {
	switch p {
	case PersonaCoach, PersonaNutritionist, PersonaListener:
		return true
	default:
		return false
	}
}

// CompanionThread is one conversation with an AI companion persona.
type CompanionThread struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Persona       string              `json:"persona"`
	Title         string              `json:"title"`
	LastMessageAt time.Time           `json:"last_message_at"`
	Messages      []*CompanionMessage `json:"messages,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CompanionMessage is a single ordered message inside a thread.
type CompanionMessage struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  uuid.UUID `json:"thread_id"`
	Sender    string    `json:"sender"` // user or assistant.
	Content   string    `json:"content"`
	Sequence  int       `json:"sequence"` // Strictly increasing per thread.
	CreatedAt time.Time `json:"created_at"`
}
