package contract

import (
	"context"
	"errors"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/repository/specification"
)

var (
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned by writes whose target row no longer exists.
	ErrNotFound = errors.New("record not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
