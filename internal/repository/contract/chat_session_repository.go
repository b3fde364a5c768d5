package contract

import (
	"context"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// Update rewrites the whole document, messages included. Returns ErrNotFound if the row is gone.
	Update(ctx context.Context, session *entity.ChatSession) error
	// Delete removes every session matching specs and reports how many went away.
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
