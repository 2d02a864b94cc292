package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/prompttune/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db *sql.DB
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(db *sql.DB) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

func (r *SQLiteHistoryRepo) AppendTurn(ctx context.Context, t *domain.TurnRecord) error {
	query := `INSERT INTO prompt_history (id, session, task_type, model, prompt, response, feedback, accepted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Session,
		t.TaskType,
		t.Model,
		t.Prompt,
		t.Response,
		t.Feedback,
		boolToInt(t.Accepted),
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting turn record: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) NextSessionID(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(session) FROM prompt_history`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("reading max session id: %w", err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

func (r *SQLiteHistoryRepo) ListSessionFeedback(ctx context.Context, session int) ([]string, error) {
	query := `SELECT feedback FROM prompt_history
		WHERE session = ? AND feedback != ''
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, session)
	if err != nil {
		return nil, fmt.Errorf("listing session feedback: %w", err)
	}
	defer rows.Close()

	var feedbacks []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback rows: %w", err)
	}
	return feedbacks, nil
}

func (r *SQLiteHistoryRepo) CountBySession(ctx context.Context, session int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM prompt_history WHERE session = ?`, session).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting session turns: %w", err)
	}
	return count, nil
}
