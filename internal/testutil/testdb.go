package testutil

import (
	"database/sql"
	"testing"

	"github.com/dogeja/blueprint/internal/db"
)

// NewTestDB opens an in-memory SQLite database with the full schema applied
// and closes it when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestUoW wraps the test database in a real UnitOfWork.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
