// Package testdb opens throwaway SQLite databases with the full schema.
package testdb

import (
	"path/filepath"
	"testing"

	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/pkg/database"

	"gorm.io/gorm"
)

// Open returns a migrated database stored under t.TempDir()
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewQuietGormDB(database.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
