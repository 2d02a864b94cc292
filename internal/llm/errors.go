package llm

import "errors"

var (
	// ErrUnavailable indicates the Ollama server is unreachable.
	ErrUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrCompletionFailed indicates the backend could not produce text.
	ErrCompletionFailed = errors.New("completion failed")
)
