//go:build integration

package implementation

import (
	"context"
	"errors"
	"testing"
	"time"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/internal/repository/contract"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("buddyai"),
		postgres.WithUsername("buddyai"),
		postgres.WithPassword("buddyai"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start Postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger.NewNopLogger()))
	return db
}

func TestPostgres_RepositoriesAgainstRealSchema(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t)

	users := NewUserRepository(db)
	sessions := NewChatSessionRepository(db)

	user := &entity.User{Id: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))

	dup := &entity.User{Id: uuid.New(), Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	assert.True(t, errors.Is(users.Create(ctx, dup), contract.ErrDuplicateKey))

	s := newSession(user.Id, "New Chat")
	require.NoError(t, sessions.Create(ctx, s))

	s.Messages = append(s.Messages, entity.ChatMessage{Role: entity.MessageRoleUser, Content: "Hello", Timestamp: time.Now().UTC()})
	s.Title = "Hello"
	require.NoError(t, sessions.Update(ctx, s))

	loaded, err := sessions.FindOne(ctx, specification.ByID{ID: s.Id}, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Hello", loaded.Title)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, entity.MessageRoleUser, loaded.Messages[0].Role)

	foreign, err := sessions.FindOne(ctx, specification.ByID{ID: s.Id}, specification.UserOwnedBy{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, foreign)

	n, err := sessions.Delete(ctx, specification.ByID{ID: s.Id}, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
