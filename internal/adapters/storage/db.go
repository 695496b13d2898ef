package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Response deletion is handled by an explicit transaction in
	// the event store, not by a declarative cascade.
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		organizer_id TEXT NOT NULL,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT,
		access_code TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		FOREIGN KEY (organizer_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS response (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		primary_name TEXT NOT NULL,
		status TEXT NOT NULL,
		total_people INTEGER NOT NULL DEFAULT 1,
		notes TEXT,
		responded_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE INDEX IF NOT EXISTS idx_event_organizer ON event(organizer_id);
	CREATE INDEX IF NOT EXISTS idx_response_event ON response(event_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
