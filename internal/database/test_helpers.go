package database

import (
	"path/filepath"
	"testing"
)

// setupTestDB opens a throwaway SQLite database under t.TempDir. Schema is
// created on open, exactly like production SQLite mode.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
