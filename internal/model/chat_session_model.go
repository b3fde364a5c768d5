package model

import (
	"time"

	"buddyai-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage is stored inline in chat_sessions.messages, so a session and its
// history are always written in a single row update.
type ChatMessage struct {
	Role      entity.MessageRole `json:"role"`
	Content   string             `json:"content"`
	Timestamp time.Time          `json:"timestamp"`
}

type ChatSession struct {
	Id        uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID                        `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title     string                           `gorm:"type:text;not null"`
	Messages  datatypes.JSONSlice[ChatMessage] `gorm:"not null"`
	IsActive  bool                             `gorm:"not null;default:true;index"`
	CreatedAt time.Time                        `gorm:"autoCreateTime"`
	UpdatedAt time.Time                        `gorm:"autoUpdateTime;index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
