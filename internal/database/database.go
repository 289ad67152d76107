package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		organization TEXT NOT NULL DEFAULT '',
		verified INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tokens (
		key TEXT NOT NULL PRIMARY KEY,
		-- UNIQUE(user_id) keeps one live token per user even under
		-- concurrent duplicate logins.
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS links (
		id TEXT NOT NULL PRIMARY KEY,
		doc_id_from INTEGER NOT NULL,
		doc_id_to INTEGER NOT NULL,
		to_doc_title TEXT NOT NULL DEFAULT '',
		citations_number INTEGER NOT NULL DEFAULT 0,
		contexts_list TEXT NOT NULL DEFAULT '',
		positions_list TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_links_doc_id_from ON links (doc_id_from);
	CREATE INDEX IF NOT EXISTS idx_links_doc_id_to ON links (doc_id_to);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		user_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
