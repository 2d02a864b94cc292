package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/prompttune/internal/domain"
)

// SQLitePromptRepo implements PromptRepo against the externally managed
// prompt library schema: prompts(id, template, tag) and
// prompt_variables(prompt_id, var_name, var_value).
type SQLitePromptRepo struct {
	db *sql.DB
}

// NewSQLitePromptRepo creates a new SQLitePromptRepo.
func NewSQLitePromptRepo(db *sql.DB) *SQLitePromptRepo {
	return &SQLitePromptRepo{db: db}
}

func (r *SQLitePromptRepo) GetByID(ctx context.Context, id int64) (*domain.PromptEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, template, tag FROM prompts WHERE id = ?`, id)
	return r.scanPrompt(row)
}

func (r *SQLitePromptRepo) Latest(ctx context.Context, tag string) (*domain.PromptEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, template, tag FROM prompts WHERE tag = ? ORDER BY id DESC LIMIT 1`, tag)
	return r.scanPrompt(row)
}

func (r *SQLitePromptRepo) Random(ctx context.Context, tag string) (*domain.PromptEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, template, tag FROM prompts WHERE tag = ? ORDER BY RANDOM() LIMIT 1`, tag)
	return r.scanPrompt(row)
}

func (r *SQLitePromptRepo) List(ctx context.Context) ([]*domain.PromptEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, template, tag FROM prompts ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*domain.PromptEntry
	for rows.Next() {
		var p domain.PromptEntry
		var tag sql.NullString
		if err := rows.Scan(&p.ID, &p.Template, &tag); err != nil {
			return nil, fmt.Errorf("scanning prompt row: %w", err)
		}
		p.Tag = tag.String
		prompts = append(prompts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompts: %w", err)
	}
	return prompts, nil
}

func (r *SQLitePromptRepo) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	query := `SELECT tag, COUNT(*) AS count
		FROM prompts
		WHERE tag IS NOT NULL AND tag != ''
		GROUP BY tag
		ORDER BY count DESC, tag ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.TagCount
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *SQLitePromptRepo) Variables(ctx context.Context, promptID int64) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT var_name, var_value FROM prompt_variables WHERE prompt_id = ?`, promptID)
	if err != nil {
		return nil, fmt.Errorf("listing prompt variables: %w", err)
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning variable row: %w", err)
		}
		vars[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variables: %w", err)
	}
	return vars, nil
}

func (r *SQLitePromptRepo) scanPrompt(row *sql.Row) (*domain.PromptEntry, error) {
	var p domain.PromptEntry
	var tag sql.NullString
	err := row.Scan(&p.ID, &p.Template, &tag)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("prompt: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning prompt: %w", err)
	}
	p.Tag = tag.String
	return &p, nil
}
