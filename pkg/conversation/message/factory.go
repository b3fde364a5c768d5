package message

import (
	"time"

	"buddyai-be/internal/entity"
)

// Factory handles chat message creation
type Factory struct{}

// NewFactory creates a new message factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateUserMessage creates a chat message from user input
func (f *Factory) CreateUserMessage(content string, now time.Time) entity.ChatMessage {
	return entity.ChatMessage{
		Role:      entity.MessageRoleUser,
		Content:   content,
		Timestamp: now,
	}
}

// CreateModelMessage creates a chat message from model response
func (f *Factory) CreateModelMessage(content string, now time.Time) entity.ChatMessage {
	return entity.ChatMessage{
		Role:      entity.MessageRoleModel,
		Content:   content,
		Timestamp: now,
	}
}

// Append adds msg to the end of the session's conversation.
func (f *Factory) Append(session *entity.ChatSession, msg entity.ChatMessage) {
	session.Messages = append(session.Messages, msg)
}
