package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Model describes one model reported by the Ollama /api/tags endpoint.
type Model struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// tagsResponse matches Ollama's GET /api/tags response.
type tagsResponse struct {
	Models []Model `json:"models"`
}

// ListModels fetches the models available on the Ollama server.
func ListModels(ctx context.Context, endpoint string) ([]Model, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d listing models", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}
	return tags.Models, nil
}
