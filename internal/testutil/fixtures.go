package testutil

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prompttune/internal/llm"
)

// ScriptedClient is an llm.Client that replays canned responses in order
// and records every request it receives.
type ScriptedClient struct {
	Replies  []string
	Err      error // when set, every call fails with this error
	Model    string
	Requests []llm.GenerateRequest

	next int
}

func (c *ScriptedClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.Requests = append(c.Requests, req)
	if c.Err != nil {
		return nil, c.Err
	}
	if c.next >= len(c.Replies) {
		return nil, fmt.Errorf("scripted client exhausted after %d replies", len(c.Replies))
	}
	text := c.Replies[c.next]
	c.next++

	model := c.Model
	if model == "" {
		model = "test-model"
	}
	return &llm.GenerateResponse{Text: text, Model: model}, nil
}

func (c *ScriptedClient) Available(ctx context.Context) bool { return true }

// RequestsFor returns the recorded requests matching the given task.
func (c *ScriptedClient) RequestsFor(task llm.TaskType) []llm.GenerateRequest {
	var out []llm.GenerateRequest
	for _, r := range c.Requests {
		if r.Task == task {
			out = append(out, r)
		}
	}
	return out
}
