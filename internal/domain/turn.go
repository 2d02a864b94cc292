package domain

import "time"

// TurnRecord is one completed round of the tuning loop: the rendered prompt
// sent to the model, the model's response, and the user's verdict. Records
// are append-only; they are never updated or deleted.
type TurnRecord struct {
	ID        string
	Session   int
	TaskType  string
	Model     string
	Prompt    string
	Response  string
	Feedback  string
	Accepted  bool
	CreatedAt time.Time
}

// TypeSummary is the rolling feedback summary kept per task type. It is
// replaced wholesale on each consolidation.
type TypeSummary struct {
	TaskType string
	Summary  string
}
