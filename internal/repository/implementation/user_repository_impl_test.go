package implementation

import (
	"context"
	"testing"
	"time"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/repository/contract"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username, email string) *entity.User {
	return &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewTestDB(t))

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindOne(ctx, specification.ByEmail{Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.Id, byEmail.Id)
	assert.Equal(t, "alice", byEmail.Username)

	byName, err := repo.FindOne(ctx, specification.ByUsername{Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.Id, byName.Id)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewTestDB(t))

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))
	err := repo.Create(ctx, newUser("alice2", "alice@example.com"))
	assert.ErrorIs(t, err, contract.ErrDuplicateKey)

	clash, err := repo.Count(ctx, specification.ByEmailOrUsername{Email: "other@example.com", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), clash)
}
