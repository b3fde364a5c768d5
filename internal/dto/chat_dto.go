package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID             `json:"_id"`
	UserId    uuid.UUID             `json:"userId"`
	Title     string                `json:"title"`
	Messages  []ChatMessageResponse `json:"messages"`
	IsActive  bool                  `json:"isActive"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ChatSessionSummaryResponse is a list row: the session without its messages.
// LastMessage is null when the session has no messages yet.
type ChatSessionSummaryResponse struct {
	Id           uuid.UUID `json:"_id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastMessage  *string   `json:"lastMessage"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type UpdateSessionRequest struct {
	Title string `json:"title"`
}

// SendMessageRequest starts a new session when SessionId is empty.
// A SessionId that is not a uuid is treated as an unknown session.
type SendMessageRequest struct {
	SessionId string `json:"sessionId"`
	Message   string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	Reply     string              `json:"reply"`
	Session   ChatSessionResponse `json:"session"`
	SessionId uuid.UUID           `json:"sessionId"`
}

type ChatStatsResponse struct {
	TotalSessions  int64 `json:"totalSessions"`
	ActiveSessions int64 `json:"activeSessions"`
	TotalMessages  int64 `json:"totalMessages"`
}
