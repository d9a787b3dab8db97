package testutil

import (
	"testing"

	"github.com/sefazor/tournest-backend/internal/config"
	"github.com/sefazor/tournest-backend/pkg/database"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that lives as long as the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewDatabase(config.DatabaseConfig{
		Driver:   "sqlite",
		URL:      ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
