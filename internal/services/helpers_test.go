package services_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/korwin-dev/citelinks-be/internal/database"
)

// defaultUserFields mirrors a typical registration payload.
func defaultUserFields() map[string]string {
	return map[string]string{
		"email":        "default@gmail.com",
		"password":     "qwerty12345",
		"first_name":   "John",
		"last_name":    "Doe",
		"organization": "MIPT",
	}
}

// newTestDB opens an in-memory database with the schema applied. A single
// connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
