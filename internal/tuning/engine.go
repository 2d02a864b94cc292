package tuning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/prompttune/internal/domain"
	"github.com/alexanderramin/prompttune/internal/llm"
	"github.com/alexanderramin/prompttune/internal/repository"
	"github.com/alexanderramin/prompttune/internal/template"
)

// State identifies where the revision loop is in its turn cycle.
type State string

const (
	StateRendered         State = "rendered"
	StateExecuted         State = "executed"
	StateAwaitingFeedback State = "awaiting_feedback"
	StateRevising         State = "revising"
	StateAccepted         State = "accepted"
	StateRejected         State = "rejected"
)

// FallbackTaskType keys history rows and summaries when classification
// fails, so store operations stay well-defined.
const FallbackTaskType = "general"

// Options configure one run of the tuning loop.
type Options struct {
	// Model is recorded on every turn; the client is already bound to it.
	Model string

	// Learn enables history persistence and summary consolidation.
	Learn bool

	// Generation parameter overrides; nil uses the task defaults.
	Temperature *float64
	TopP        *float64
	NumThread   *int
}

// Outcome reports how a tuning loop ended.
type Outcome struct {
	State    State
	Template string
	Vars     map[string]string
	Session  int
	TaskType string
	Turns    int
	Summary  string
}

// Engine runs the iterative revision loop: render the template, execute it
// against the model, collect feedback, and either revise and repeat or
// terminate on an explicit accept/reject.
type Engine struct {
	client       llm.Client
	history      repository.HistoryRepo
	summaries    repository.SummaryRepo
	provider     FeedbackProvider
	observer     LoopObserver
	classifier   *Classifier
	consolidator *Consolidator
	opts         Options
}

// NewEngine creates an Engine. The history and summary repos may be nil
// when opts.Learn is false.
func NewEngine(client llm.Client, history repository.HistoryRepo, summaries repository.SummaryRepo,
	provider FeedbackProvider, observer LoopObserver, opts Options) *Engine {
	if observer == nil {
		observer = NoopLoopObserver{}
	}
	return &Engine{
		client:       client,
		history:      history,
		summaries:    summaries,
		provider:     provider,
		observer:     observer,
		classifier:   NewClassifier(client),
		consolidator: NewConsolidator(client, history, summaries),
		opts:         opts,
	}
}

// Run drives the loop to termination, starting from the given template and
// variable mapping. On errors that abandon the current iteration (a
// malformed template, a failed completion) the returned Outcome reflects
// the state reached so far; nothing is persisted for the broken turn.
func (e *Engine) Run(ctx context.Context, tmpl string, vars map[string]string) (*Outcome, error) {
	if vars == nil {
		vars = make(map[string]string)
	}
	out := &Outcome{Template: tmpl, Vars: vars}

	if e.opts.Learn {
		taskType, err := e.classifier.Classify(ctx, tmpl)
		if err != nil {
			if !errors.Is(err, ErrClassificationFailed) {
				return out, err
			}
			taskType = FallbackTaskType
		}
		out.TaskType = taskType

		session, err := e.history.NextSessionID(ctx)
		if err != nil {
			return out, fmt.Errorf("allocating session id: %w", err)
		}
		out.Session = session
	}

	// Ask for the whole missing set up front; placeholders introduced by a
	// later revision are caught at render time instead.
	if err := e.fillMissing(ctx, out.Template, vars); err != nil {
		return out, err
	}

	for {
		rendered, err := e.render(ctx, out.Template, vars)
		if err != nil {
			return out, err
		}
		out.State = StateRendered
		e.observer.OnRendered(rendered)

		resp, err := e.generate(ctx, llm.TaskGenerate, rendered)
		if err != nil {
			return out, err
		}
		out.State = StateExecuted
		e.observer.OnResponse(resp.Text)

		out.State = StateAwaitingFeedback
		feedback, err := e.provider.Feedback(ctx)
		if err != nil {
			return out, err
		}
		feedback = strings.TrimSpace(feedback)

		if feedback == "" {
			return e.finish(ctx, out, rendered, resp.Text)
		}

		out.State = StateRevising
		if err := e.revise(ctx, out, rendered, resp.Text, feedback); err != nil {
			return out, err
		}
	}
}

// render fills the template, soliciting values for placeholders that were
// introduced by a mid-loop revision. Malformed templates are terminal for
// the iteration.
func (e *Engine) render(ctx context.Context, tmpl string, vars map[string]string) (string, error) {
	for {
		rendered, err := template.Render(tmpl, vars)
		var missing *template.MissingVariableError
		switch {
		case err == nil:
			return rendered, nil
		case errors.As(err, &missing):
			val, perr := e.provider.Variable(ctx, missing.Name)
			if perr != nil {
				return "", perr
			}
			vars[missing.Name] = val
		default:
			return "", err
		}
	}
}

// revise obtains a replacement template from the model and, in learning
// mode, records the rejected turn. Feedback implies rejection: the accept
// question is never asked on this path.
func (e *Engine) revise(ctx context.Context, out *Outcome, rendered, response, feedback string) error {
	var summary string
	if e.opts.Learn {
		var err error
		summary, err = e.summaries.Get(ctx, out.TaskType)
		if err != nil {
			return fmt.Errorf("loading type summary: %w", err)
		}
	}

	revised, err := e.generate(ctx, llm.TaskRevise, buildRevisionPrompt(out.Template, feedback, summary))
	if err != nil {
		return err
	}

	if e.opts.Learn {
		if err := e.appendTurn(ctx, out, rendered, response, feedback, false); err != nil {
			return err
		}
	}

	out.Turns++
	// The model's output is taken as the new template as-is; the next
	// render surfaces any grammar violation it may contain.
	out.Template = strings.TrimSpace(revised.Text)
	e.observer.OnRevised(out.Template)
	return nil
}

// finish handles the empty-feedback termination path: explicit acceptance,
// persistence, and summary consolidation.
func (e *Engine) finish(ctx context.Context, out *Outcome, rendered, response string) (*Outcome, error) {
	accepted, err := e.provider.ConfirmAccept(ctx)
	if err != nil {
		return out, err
	}
	if accepted {
		out.State = StateAccepted
	} else {
		out.State = StateRejected
	}
	out.Turns++

	if !e.opts.Learn {
		return out, nil
	}

	if err := e.appendTurn(ctx, out, rendered, response, "", accepted); err != nil {
		return out, err
	}

	summary, err := e.consolidator.Consolidate(ctx, out.TaskType, out.Session)
	if err != nil {
		return out, err
	}
	out.Summary = summary
	if summary != "" {
		e.observer.OnSummary(summary)
	}
	return out, nil
}

func (e *Engine) generate(ctx context.Context, task llm.TaskType, prompt string) (*llm.GenerateResponse, error) {
	return e.client.Generate(ctx, llm.GenerateRequest{
		Task:        task,
		Prompt:      prompt,
		Temperature: e.opts.Temperature,
		TopP:        e.opts.TopP,
		NumThread:   e.opts.NumThread,
	})
}

func (e *Engine) fillMissing(ctx context.Context, tmpl string, vars map[string]string) error {
	names, err := template.Placeholders(tmpl)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := vars[name]; ok {
			continue
		}
		val, err := e.provider.Variable(ctx, name)
		if err != nil {
			return err
		}
		vars[name] = val
	}
	return nil
}

func (e *Engine) appendTurn(ctx context.Context, out *Outcome, rendered, response, feedback string, accepted bool) error {
	rec := &domain.TurnRecord{
		ID:        uuid.New().String(),
		Session:   out.Session,
		TaskType:  out.TaskType,
		Model:     e.opts.Model,
		Prompt:    rendered,
		Response:  response,
		Feedback:  feedback,
		Accepted:  accepted,
		CreatedAt: time.Now(),
	}
	if err := e.history.AppendTurn(ctx, rec); err != nil {
		return fmt.Errorf("recording turn: %w", err)
	}
	return nil
}
