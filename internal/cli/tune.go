package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/prompttune/internal/db"
	"github.com/alexanderramin/prompttune/internal/domain"
	"github.com/alexanderramin/prompttune/internal/llm"
	"github.com/alexanderramin/prompttune/internal/repository"
	"github.com/alexanderramin/prompttune/internal/template"
	"github.com/alexanderramin/prompttune/internal/tuning"
)

func runTune(ctx context.Context, app *App, fs *pflag.FlagSet, flags *tuneFlags) error {
	prompts, closeLibrary := openPromptLibrary(app, flags)
	defer closeLibrary()

	tmpl, vars, err := resolveTemplate(ctx, app, prompts, flags)
	if err != nil {
		return err
	}

	if len(vars) == 0 {
		vars = loadVarsFile(app.Err, flags.varsFile)
	}

	model := flags.model
	if model == "" {
		if !app.interactive() {
			return fmt.Errorf("--model is required when not running interactively")
		}
		model, err = pickModel(ctx, app.LLMConfig.Endpoint)
		if err != nil {
			return err
		}
	}

	cfg := app.LLMConfig
	cfg.Model = model
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(app.Err)
	}
	client := llm.NewOllamaClient(cfg, observer)

	var history repository.HistoryRepo
	var summaries repository.SummaryRepo
	if flags.learn {
		dbPath := flags.dbPath
		if dbPath == "" {
			if dbPath, err = defaultHistoryPath(); err != nil {
				return fmt.Errorf("resolving history database path: %w", err)
			}
		}
		database, err := db.OpenHistoryDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()
		history = repository.NewSQLiteHistoryRepo(database)
		summaries = repository.NewSQLiteSummaryRepo(database)
		fmt.Fprintln(app.Out, styleDim.Render("Learning mode on: feedback will be remembered."))
	}

	temp, topP, threads := generationOverrides(fs, flags)
	engine := tuning.NewEngine(client, history, summaries,
		newConsoleProvider(app.In, app.Out),
		newConsoleObserver(app.Out),
		tuning.Options{
			Model:       model,
			Learn:       flags.learn,
			Temperature: temp,
			TopP:        topP,
			NumThread:   threads,
		})

	outcome, err := engine.Run(ctx, tmpl, vars)
	if err != nil {
		if errors.Is(err, template.ErrMalformed) {
			return fmt.Errorf("template rejected: %w\nFix the template and run again", err)
		}
		return err
	}

	fmt.Fprintln(app.Out)
	switch outcome.State {
	case tuning.StateAccepted:
		fmt.Fprintln(app.Out, styleGreen.Render(fmt.Sprintf("Prompt accepted after %d turn(s).", outcome.Turns)))
	case tuning.StateRejected:
		fmt.Fprintln(app.Out, styleYellow.Render("Prompt not accepted."))
	}

	if app.interactive() {
		return offerSave(app.In, app.Out, outcome.Template, outcome.Vars)
	}
	return nil
}

// openPromptLibrary opens the external prompt library if one can be found.
// The library is optional for tuning: on failure it warns and returns a
// nil repo so the loop falls back to file or manual entry.
func openPromptLibrary(app *App, flags *tuneFlags) (repository.PromptRepo, func()) {
	path := flags.promptsDBPath
	if path == "" {
		var err error
		if path, err = defaultLibraryPath(); err != nil {
			return nil, func() {}
		}
	}
	if _, err := os.Stat(path); err != nil {
		if flags.promptID > 0 || flags.promptTag != "" {
			fmt.Fprintf(app.Err, "Warning: prompt library %s not found; ignoring library flags\n", path)
		}
		return nil, func() {}
	}

	library, err := db.OpenPromptLibrary(path)
	if err != nil {
		fmt.Fprintf(app.Err, "Warning: %v; library features unavailable\n", err)
		return nil, func() {}
	}
	return repository.NewSQLitePromptRepo(library), func() { library.Close() }
}

// resolveTemplate picks the template source in priority order: library
// lookup by id or tag, then the interactive tag picker, then the template
// file, then manual entry.
func resolveTemplate(ctx context.Context, app *App, prompts repository.PromptRepo, flags *tuneFlags) (string, map[string]string, error) {
	if prompts != nil && (flags.promptID > 0 || flags.promptTag != "") {
		return loadFromLibrary(ctx, app, prompts, flags)
	}

	if fileExists(flags.promptFile) {
		data, err := os.ReadFile(flags.promptFile)
		if err != nil {
			return "", nil, fmt.Errorf("reading template file: %w", err)
		}
		fmt.Fprintf(app.Out, "Loaded template from %s\n", flags.promptFile)
		return string(data), nil, nil
	}

	if !app.interactive() {
		return "", nil, fmt.Errorf("no template: %s does not exist and stdin is not a terminal", flags.promptFile)
	}

	if prompts != nil {
		tag, ok, err := pickTag(ctx, prompts)
		if err != nil {
			return "", nil, err
		}
		if ok {
			flags.promptTag = tag
			return loadFromLibrary(ctx, app, prompts, flags)
		}
	}

	tmpl, err := readTemplateInteractive(app.In, app.Out)
	return tmpl, nil, err
}

func loadFromLibrary(ctx context.Context, app *App, prompts repository.PromptRepo, flags *tuneFlags) (string, map[string]string, error) {
	var (
		entry *domain.PromptEntry
		err   error
	)
	switch {
	case flags.promptID > 0:
		entry, err = prompts.GetByID(ctx, flags.promptID)
	case flags.randomPrompt:
		entry, err = prompts.Random(ctx, flags.promptTag)
	default:
		entry, err = prompts.Latest(ctx, flags.promptTag)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("no library prompt matches the given id/tag: %w", err)
		}
		return "", nil, fmt.Errorf("loading library prompt: %w", err)
	}

	vars, err := prompts.Variables(ctx, entry.ID)
	if err != nil {
		fmt.Fprintf(app.Err, "Warning: loading saved variables for prompt %d: %v\n", entry.ID, err)
		vars = nil
	}

	label := fmt.Sprintf("prompt %d", entry.ID)
	if entry.Tag != "" {
		label += fmt.Sprintf(" [%s]", entry.Tag)
	}
	fmt.Fprintf(app.Out, "Loaded %s from the library (%d saved variable(s))\n", label, len(vars))
	return entry.Template, vars, nil
}
