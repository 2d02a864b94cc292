package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteSummaryRepo implements SummaryRepo using a SQLite database.
type SQLiteSummaryRepo struct {
	db *sql.DB
}

// NewSQLiteSummaryRepo creates a new SQLiteSummaryRepo.
func NewSQLiteSummaryRepo(db *sql.DB) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: db}
}

func (r *SQLiteSummaryRepo) Get(ctx context.Context, taskType string) (string, error) {
	var summary string
	err := r.db.QueryRowContext(ctx,
		`SELECT summary FROM type_summaries WHERE task_type = ?`, taskType).Scan(&summary)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading type summary: %w", err)
	}
	return summary, nil
}

func (r *SQLiteSummaryRepo) Upsert(ctx context.Context, taskType, summary string) error {
	query := `INSERT INTO type_summaries (task_type, summary) VALUES (?, ?)
		ON CONFLICT(task_type) DO UPDATE SET summary = excluded.summary`
	_, err := r.db.ExecContext(ctx, query, taskType, summary)
	if err != nil {
		return fmt.Errorf("upserting type summary: %w", err)
	}
	return nil
}
