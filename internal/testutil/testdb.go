package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/prompttune/internal/db"
)

// NewTestDB creates an in-memory history database with all migrations
// applied. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenHistoryDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewPromptLibrary creates an in-memory prompt library with the schema the
// external prompt manager uses. Production code never creates this schema;
// tests need a populated library to read from.
func NewPromptLibrary(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenPromptLibrary(":memory:")
	if err != nil {
		t.Fatalf("failed to create prompt library: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	stmts := []string{
		`CREATE TABLE prompts (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			template TEXT NOT NULL,
			tag      TEXT
		)`,
		`CREATE TABLE prompt_variables (
			prompt_id INTEGER NOT NULL REFERENCES prompts(id),
			var_name  TEXT NOT NULL,
			var_value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := database.Exec(stmt); err != nil {
			t.Fatalf("failed to create prompt library schema: %v", err)
		}
	}
	return database
}

// SeedPrompt inserts a prompt with optional variables and returns its id.
func SeedPrompt(t *testing.T, database *sql.DB, template, tag string, vars map[string]string) int64 {
	t.Helper()
	res, err := database.Exec(`INSERT INTO prompts (template, tag) VALUES (?, ?)`, template, tag)
	if err != nil {
		t.Fatalf("failed to seed prompt: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read prompt id: %v", err)
	}
	for name, value := range vars {
		if _, err := database.Exec(
			`INSERT INTO prompt_variables (prompt_id, var_name, var_value) VALUES (?, ?, ?)`,
			id, name, value); err != nil {
			t.Fatalf("failed to seed prompt variable: %v", err)
		}
	}
	return id
}
