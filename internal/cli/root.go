package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/prompttune/internal/llm"
)

// App holds the streams and backend configuration CLI commands run against.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	LLMConfig llm.Config

	// IsInteractive reports whether stdin is a terminal; pickers and
	// manual entry are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

type tuneFlags struct {
	promptFile    string
	varsFile      string
	model         string
	learn         bool
	dbPath        string
	promptsDBPath string
	promptID      int64
	promptTag     string
	randomPrompt  bool
	temperature   float64
	topP          float64
	threads       int
}

// NewRootCmd creates the top-level "prompttune" command. The root command
// itself runs the tuning loop; "list" inspects the prompt library.
func NewRootCmd(app *App) *cobra.Command {
	flags := &tuneFlags{}

	root := &cobra.Command{
		Use:   "prompttune",
		Short: "Iteratively tune prompt templates against a local model",
		Long: `prompttune renders a prompt template, runs it against an Ollama model,
and revises the template from your feedback until you accept or reject it.
With --learn, turns and per-task-type preferences persist across sessions.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTune(cmd.Context(), app, cmd.Flags(), flags)
		},
	}

	fl := root.Flags()
	fl.StringVar(&flags.promptFile, "prompt", "prompt.txt", "prompt template file")
	fl.StringVar(&flags.varsFile, "vars", "vars.json", "JSON file with template variable values")
	fl.StringVar(&flags.model, "model", "", "model name (interactive pick when omitted)")
	fl.BoolVar(&flags.learn, "learn", false, "record turns and learned preferences in the history database")
	fl.StringVar(&flags.dbPath, "db", "", "history database path (default $PROMPTTUNE_DB or ~/.prompttune/history.db)")
	fl.StringVar(&flags.promptsDBPath, "prompts-db", "", "prompt library path (default $PROMPTTUNE_PROMPTS_DB or ~/.prompttune/prompts.db)")
	fl.Int64Var(&flags.promptID, "prompt-id", 0, "load a library prompt by id")
	fl.StringVar(&flags.promptTag, "prompt-tag", "", "load a library prompt by tag")
	fl.BoolVar(&flags.randomPrompt, "random-vars", false, "with --prompt-tag, pick randomly among matches instead of the newest")
	fl.Float64Var(&flags.temperature, "temperature", 0.6, "sampling temperature in [0,1]")
	fl.Float64Var(&flags.topP, "top-p", 0.9, "nucleus sampling mass in (0,1]")
	fl.IntVar(&flags.threads, "threads", 0, "backend thread count hint")

	root.AddCommand(newListCmd(app))

	return root
}

// generationOverrides returns pointers only for parameters the user set
// explicitly, so untouched flags fall through to the per-task defaults.
func generationOverrides(fs *pflag.FlagSet, flags *tuneFlags) (temp, topP *float64, threads *int) {
	if fs.Changed("temperature") {
		temp = &flags.temperature
	}
	if fs.Changed("top-p") {
		topP = &flags.topP
	}
	if fs.Changed("threads") {
		threads = &flags.threads
	}
	return temp, topP, threads
}

func defaultHistoryPath() (string, error) {
	if v := os.Getenv("PROMPTTUNE_DB"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prompttune", "history.db"), nil
}

func defaultLibraryPath() (string, error) {
	if v := os.Getenv("PROMPTTUNE_PROMPTS_DB"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prompttune", "prompts.db"), nil
}
