package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole определяет автора сообщения в AI-чате
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleAI   ChatRole = "ai"
)

// ChatSession представляет сессию AI-помощника
type ChatSession struct {
	ID     uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	UserID uuid.UUID `json:"user_id" gorm:"type:text;not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	User     User          `json:"-" gorm:"foreignKey:UserID"`
	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
}

// ChatMessage представляет одно сообщение AI-чата
type ChatMessage struct {
	ID       uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ChatID   uuid.UUID `json:"chat_id" gorm:"type:text;not null;index"`
	Role     ChatRole  `json:"role" gorm:"not null"`
	Text     string    `json:"text"`
	FilePath string    `json:"file_path"`

	CreatedAt time.Time `json:"created_at"`
}
