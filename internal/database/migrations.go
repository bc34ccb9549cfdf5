package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema if needed.
// (stage, stage_index) is deliberately not UNIQUE: a renumber pass writes its
// shifts concurrently and passes through transient duplicates.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			amount INTEGER NOT NULL DEFAULT 0,
			stage TEXT NOT NULL,
			stage_index INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_deals_stage
		ON deals(stage, stage_index)
	`)
	return err
}
