package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations against the history database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prompt_history (
		id         TEXT PRIMARY KEY,
		session    INTEGER NOT NULL,
		task_type  TEXT NOT NULL DEFAULT '',
		model      TEXT NOT NULL DEFAULT '',
		prompt     TEXT NOT NULL,
		response   TEXT NOT NULL,
		feedback   TEXT NOT NULL DEFAULT '',
		accepted   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prompt_history_session ON prompt_history(session)`,

	`CREATE TABLE IF NOT EXISTS type_summaries (
		task_type TEXT PRIMARY KEY,
		summary   TEXT NOT NULL DEFAULT ''
	)`,
}
