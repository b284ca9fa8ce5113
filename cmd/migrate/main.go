package main

import (
	"log"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/pkg/database"
)

func main() {
	// 1. Load Configuration (reads .env when present)
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Starting GORM Migration (driver: %s)...", cfg.Database.Driver)

	models := model.All()
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Printf("✅ Success: %d tables migrated.", len(models))
}
