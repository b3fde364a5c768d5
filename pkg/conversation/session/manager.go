package session

import (
	"context"
	"time"

	"buddyai-be/internal/constant"
	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrSessionNotFound = apperror.NotFound("Chat session not found")

// Manager handles session lookup, creation and titling
type Manager struct{}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{}
}

// Truncate keeps the first n characters of s, counted in runes. JavaScript clients measuring
// with String.length count UTF-16 code units, so astral characters (emoji) count twice there.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ProvisionalTitle is the title a session gets when it is created from its first message.
func ProvisionalTitle(message string) string {
	if message == "" {
		return constant.DefaultSessionTitle
	}
	return Truncate(message, constant.SessionTitleMaxChars)
}

// ParseID turns a client supplied id into a uuid. Malformed ids resolve to ErrSessionNotFound.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

// New builds an unsaved session owned by userId. An empty title falls back to the default.
func (m *Manager) New(userId uuid.UUID, title string, now time.Time) *entity.ChatSession {
	if title == "" {
		title = constant.DefaultSessionTitle
	}
	return &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Messages:  []entity.ChatMessage{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// VerifyChatSession loads a session the user owns. Foreign sessions are reported as missing.
func (m *Manager) VerifyChatSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Resolve loads the referenced session, or builds a new one titled after message when rawId is empty.
func (m *Manager) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, rawId, message string, now time.Time) (session *entity.ChatSession, created bool, err error) {
	if rawId == "" {
		return m.New(userId, ProvisionalTitle(message), now), true, nil
	}
	id, err := ParseID(rawId)
	if err != nil {
		return nil, false, err
	}
	session, err = m.VerifyChatSession(ctx, uow, userId, id)
	if err != nil {
		return nil, false, err
	}
	return session, false, nil
}

// ApplyAutoTitle retitles a session after its first exchange while it still has the default title.
func (m *Manager) ApplyAutoTitle(session *entity.ChatSession, message string) bool {
	if len(session.Messages) != 2 || session.Title != constant.DefaultSessionTitle {
		return false
	}
	session.Title = Truncate(message, constant.SessionTitleMaxChars)
	return true
}

// UpdateTitle replaces the title unless the new one is empty.
func (m *Manager) UpdateTitle(session *entity.ChatSession, title string, now time.Time) {
	if title != "" {
		session.Title = title
	}
	session.UpdatedAt = now
}
