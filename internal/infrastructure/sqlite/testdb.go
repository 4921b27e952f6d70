package sqlite

import (
	"database/sql"
	"testing"
)

// NewTestDB crea una base en memoria con el esquema aplicado y la cierra al terminar el test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
