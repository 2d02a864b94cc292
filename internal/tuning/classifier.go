package tuning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/prompttune/internal/llm"
)

// ErrClassificationFailed indicates the task type of a template could not
// be determined.
var ErrClassificationFailed = errors.New("task type classification failed")

// Classifier labels a prompt template with a short task type by asking the
// model. Only the first whitespace-delimited token of the answer is kept,
// lower-cased; a multi-word category is truncated to its first word.
type Classifier struct {
	client llm.Client
}

// NewClassifier creates a Classifier backed by an LLM client.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, tmpl string) (string, error) {
	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskClassify,
		Prompt: buildClassifyPrompt(tmpl),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	fields := strings.Fields(resp.Text)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrClassificationFailed)
	}
	return strings.ToLower(fields[0]), nil
}
