package testutil

import (
	"path/filepath"
	"testing"

	"healthvoice/internal/app/repository/sqlite"
)

// NewTestDB opens a throwaway SQLite database in the test's temp
// directory and closes it when the test finishes.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
