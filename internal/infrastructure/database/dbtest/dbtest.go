// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"turf-booking/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
)

// New returns a fresh database that is closed when t finishes.
func New(t testing.TB) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), "test")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// A single connection keeps the in-memory database alive and
	// serializes writers the way SQLite expects.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
