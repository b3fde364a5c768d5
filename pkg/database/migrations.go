package database

import (
	"buddyai-be/internal/model"
	"buddyai-be/internal/pkg/logger"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func GetMigrator(db *gorm.DB, log logger.ILogger) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "0001_create_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&model.User{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.User{})
			},
		},
		{
			ID: "0002_create_chat_sessions",
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&model.ChatSession{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.ChatSession{})
			},
		},
	})

	// Runs instead of the list above on an empty database and marks every migration as applied.
	migrator.InitSchema(func(tx *gorm.DB) error {
		log.Info("MIGRATE", "Clean database detected, running full schema initialization", nil)
		return tx.AutoMigrate(&model.User{}, &model.ChatSession{})
	})

	return migrator
}

func Migrate(db *gorm.DB, log logger.ILogger) error {
	return GetMigrator(db, log).Migrate()
}
