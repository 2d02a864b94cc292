package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskGenerate executes the filled prompt against the model.
	TaskGenerate TaskType = "generate"
	// TaskClassify labels a template with its task type.
	TaskClassify TaskType = "classify"
	// TaskRevise rewrites a template to address user feedback.
	TaskRevise TaskType = "revise"
	// TaskSummarize consolidates session feedback into a rolling summary.
	TaskSummarize TaskType = "summarize"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	TopP        float64
	NumThread   int // worker count hint passed through to the backend
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The global timeout
// is generous because local inference can take minutes on modest hardware.
func DefaultConfig() Config {
	return Config{
		LogCalls:  false,
		Endpoint:  "http://localhost:11434",
		Model:     "gemma3:1b",
		TimeoutMs: 300000,
		Tasks: map[TaskType]TaskConfig{
			TaskGenerate:  {Temperature: 0.6, TopP: 0.9, NumThread: 21},
			TaskClassify:  {Temperature: 0.2, TopP: 0.9, NumThread: 4, TimeoutMs: 60000},
			TaskRevise:    {Temperature: 0.6, TopP: 0.9, NumThread: 21},
			TaskSummarize: {Temperature: 0.6, TopP: 0.9, NumThread: 21},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PROMPTTUNE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PROMPTTUNE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PROMPTTUNE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PROMPTTUNE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
