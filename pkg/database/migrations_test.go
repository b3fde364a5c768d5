package database

import (
	"fmt"
	"testing"

	"buddyai-be/internal/model"
	applog "buddyai-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrate_CreatesSchemaAndIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, Migrate(db, applog.NewNopLogger()))
	require.NoError(t, Migrate(db, applog.NewNopLogger()))

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.ChatSession{}))
	assert.True(t, db.Migrator().HasIndex(&model.User{}, "Email"))
	assert.True(t, db.Migrator().HasIndex(&model.ChatSession{}, "UserId"))

	var applied int64
	require.NoError(t, db.Table("migrations").Where("id = ?", "0002_create_chat_sessions").Count(&applied).Error)
	assert.Equal(t, int64(1), applied)
}

func TestRollbackLast_DropsChatSessions(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db, applog.NewNopLogger()))

	require.NoError(t, GetMigrator(db, applog.NewNopLogger()).RollbackLast())

	assert.False(t, db.Migrator().HasTable(&model.ChatSession{}))
	assert.True(t, db.Migrator().HasTable(&model.User{}))
}

func TestMigrate_LogsSchemaInitOnlyOnCleanDatabase(t *testing.T) {
	db := openMemoryDB(t)
	core, logs := observer.New(zap.InfoLevel)
	log := applog.NewFromZap(zap.New(core))

	require.NoError(t, Migrate(db, log))
	require.NoError(t, Migrate(db, log))

	entries := logs.FilterMessage("Clean database detected, running full schema initialization").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "MIGRATE", entries[0].ContextMap()["module"])
}
