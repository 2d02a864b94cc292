package tuning

import "context"

// FeedbackProvider supplies the user-side inputs of the tuning loop. The
// interactive CLI implements it over stdin; tests drive the engine with a
// scripted implementation.
type FeedbackProvider interface {
	// Variable solicits a value for a placeholder with no mapping.
	Variable(ctx context.Context, name string) (string, error)

	// Feedback solicits the verdict on a model response. An empty string
	// means the user has no further problems to report.
	Feedback(ctx context.Context) (string, error)

	// ConfirmAccept asks whether the final template is accepted. Only
	// called on the empty-feedback path: a user who reported a problem is
	// never asked to accept.
	ConfirmAccept(ctx context.Context) (bool, error)
}

// LoopObserver receives the intermediate artifacts of each turn so the
// caller can display them.
type LoopObserver interface {
	OnRendered(prompt string)
	OnResponse(text string)
	OnRevised(template string)
	OnSummary(summary string)
}

// NoopLoopObserver discards all loop events. Useful for tests.
type NoopLoopObserver struct{}

func (NoopLoopObserver) OnRendered(string) {}
func (NoopLoopObserver) OnResponse(string) {}
func (NoopLoopObserver) OnRevised(string)  {}
func (NoopLoopObserver) OnSummary(string)  {}
