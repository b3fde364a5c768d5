package main

import (
	"flag"
	"log"

	"buddyai-be/internal/config"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/pkg/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer func() { _ = sysLogger.Sync() }()

	migrator := database.GetMigrator(db, sysLogger)
	if *rollback {
		if err := migrator.RollbackLast(); err != nil {
			log.Fatalf("Error: Rollback failed: %v", err)
		}
		log.Println("✅ Success: Rolled back the last migration.")
		return
	}

	if err := migrator.Migrate(); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}
	log.Println("✅ Success: Database migration completed.")
}
