package repository

import (
	"context"

	"github.com/alexanderramin/prompttune/internal/domain"
)

// HistoryRepo stores the append-only record of tuning turns. There are no
// update or delete operations: a row written here is permanent.
type HistoryRepo interface {
	AppendTurn(ctx context.Context, t *domain.TurnRecord) error

	// NextSessionID returns max(session)+1, or 1 for an empty store. Not
	// atomic against concurrent writers sharing the same database file.
	NextSessionID(ctx context.Context) (int, error)

	// ListSessionFeedback returns the non-empty feedback texts recorded for
	// a session, oldest first.
	ListSessionFeedback(ctx context.Context, session int) ([]string, error)

	CountBySession(ctx context.Context, session int) (int, error)
}

// SummaryRepo stores one rolling feedback summary per task type.
type SummaryRepo interface {
	// Get returns the summary for a task type, or "" if none exists.
	Get(ctx context.Context, taskType string) (string, error)

	// Upsert creates or replaces the summary for a task type.
	Upsert(ctx context.Context, taskType, summary string) error
}

// PromptRepo reads the externally managed prompt library.
type PromptRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.PromptEntry, error)

	// Latest returns the most recently stored prompt carrying the tag.
	Latest(ctx context.Context, tag string) (*domain.PromptEntry, error)

	// Random returns a uniformly chosen prompt carrying the tag.
	Random(ctx context.Context, tag string) (*domain.PromptEntry, error)

	List(ctx context.Context) ([]*domain.PromptEntry, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)

	// Variables returns the saved variable mapping for a prompt.
	Variables(ctx context.Context, promptID int64) (map[string]string, error)
}
