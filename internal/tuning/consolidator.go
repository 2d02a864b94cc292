package tuning

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prompttune/internal/llm"
	"github.com/alexanderramin/prompttune/internal/repository"
)

// Consolidator merges the feedback of a finished session with the existing
// rolling summary for the task type, replacing the stored summary.
type Consolidator struct {
	client    llm.Client
	history   repository.HistoryRepo
	summaries repository.SummaryRepo
}

// NewConsolidator creates a Consolidator.
func NewConsolidator(client llm.Client, history repository.HistoryRepo, summaries repository.SummaryRepo) *Consolidator {
	return &Consolidator{client: client, history: history, summaries: summaries}
}

// Consolidate reads all feedback recorded for the session and upserts the
// merged summary for the task type. When the session produced no feedback
// there is nothing to fold in: the existing summary is returned unchanged
// and no model call is made.
func (c *Consolidator) Consolidate(ctx context.Context, taskType string, session int) (string, error) {
	feedbacks, err := c.history.ListSessionFeedback(ctx, session)
	if err != nil {
		return "", fmt.Errorf("listing session feedback: %w", err)
	}

	prev, err := c.summaries.Get(ctx, taskType)
	if err != nil {
		return "", fmt.Errorf("loading type summary: %w", err)
	}

	if len(feedbacks) == 0 {
		return prev, nil
	}

	var prompt string
	if prev != "" {
		prompt = buildMergeSummaryPrompt(taskType, prev, feedbacks)
	} else {
		prompt = buildFreshSummaryPrompt(taskType, feedbacks)
	}

	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskSummarize,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("summarizing feedback: %w", err)
	}

	summary := strings.TrimSpace(resp.Text)
	if err := c.summaries.Upsert(ctx, taskType, summary); err != nil {
		return "", fmt.Errorf("storing type summary: %w", err)
	}
	return summary, nil
}
