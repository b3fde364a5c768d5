package mapper

import (
	"buddyai-be/internal/entity"
	"buddyai-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	messages := make([]entity.ChatMessage, 0, len(s.Messages))
	for _, msg := range s.Messages {
		messages = append(messages, m.ChatMessageToEntity(msg))
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  messages,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	// Never persist a JSON null; an empty history is "[]".
	messages := make(datatypes.JSONSlice[model.ChatMessage], 0, len(s.Messages))
	for _, msg := range s.Messages {
		messages = append(messages, m.ChatMessageToModel(msg))
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  messages,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionsToEntities(models []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(models))
	for i, s := range models {
		entities[i] = m.ChatSessionToEntity(s)
	}
	return entities
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg model.ChatMessage) entity.ChatMessage {
	return entity.ChatMessage{
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg entity.ChatMessage) model.ChatMessage {
	return model.ChatMessage{
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}
