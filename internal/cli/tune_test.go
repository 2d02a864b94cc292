package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/prompttune/internal/llm"
	"github.com/alexanderramin/prompttune/internal/repository"
	"github.com/alexanderramin/prompttune/internal/testutil"
)

func testApp(in string) (*App, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &App{
		In:            strings.NewReader(in),
		Out:           &out,
		Err:           &errOut,
		LLMConfig:     llm.DefaultConfig(),
		IsInteractive: func() bool { return false },
	}, &out, &errOut
}

func TestResolveTemplate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("library by id wins over file", func(t *testing.T) {
		t.Parallel()

		library := testutil.NewPromptLibrary(t)
		id := testutil.SeedPrompt(t, library, "Summarize {text}", "summary",
			map[string]string{"text": "saved"})
		prompts := repository.NewSQLitePromptRepo(library)

		app, out, _ := testApp("")
		flags := &tuneFlags{promptID: id, promptFile: writeTemp(t, "from file")}

		tmpl, vars, err := resolveTemplate(ctx, app, prompts, flags)
		require.NoError(t, err)
		assert.Equal(t, "Summarize {text}", tmpl)
		assert.Equal(t, map[string]string{"text": "saved"}, vars)
		assert.Contains(t, out.String(), "from the library")
	})

	t.Run("tag picks newest by default", func(t *testing.T) {
		t.Parallel()

		library := testutil.NewPromptLibrary(t)
		testutil.SeedPrompt(t, library, "old", "summary", nil)
		testutil.SeedPrompt(t, library, "new", "summary", nil)
		prompts := repository.NewSQLitePromptRepo(library)

		app, _, _ := testApp("")
		flags := &tuneFlags{promptTag: "summary"}

		tmpl, _, err := resolveTemplate(ctx, app, prompts, flags)
		require.NoError(t, err)
		assert.Equal(t, "new", tmpl)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		t.Parallel()

		library := testutil.NewPromptLibrary(t)
		prompts := repository.NewSQLitePromptRepo(library)

		app, _, _ := testApp("")
		flags := &tuneFlags{promptID: 99}

		_, _, err := resolveTemplate(ctx, app, prompts, flags)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("falls back to file without library flags", func(t *testing.T) {
		t.Parallel()

		app, out, _ := testApp("")
		flags := &tuneFlags{promptFile: writeTemp(t, "Translate {text}")}

		tmpl, vars, err := resolveTemplate(ctx, app, nil, flags)
		require.NoError(t, err)
		assert.Equal(t, "Translate {text}", tmpl)
		assert.Nil(t, vars)
		assert.Contains(t, out.String(), "Loaded template from")
	})

	t.Run("non-interactive with no source errors", func(t *testing.T) {
		t.Parallel()

		app, _, _ := testApp("")
		flags := &tuneFlags{promptFile: filepath.Join(t.TempDir(), "absent.txt")}

		_, _, err := resolveTemplate(ctx, app, nil, flags)
		assert.Error(t, err)
	})

	t.Run("interactive manual entry", func(t *testing.T) {
		t.Parallel()

		app, _, _ := testApp("Explain {topic}\n\n")
		app.IsInteractive = func() bool { return true }
		flags := &tuneFlags{promptFile: filepath.Join(t.TempDir(), "absent.txt")}

		tmpl, _, err := resolveTemplate(ctx, app, nil, flags)
		require.NoError(t, err)
		assert.Equal(t, "Explain {topic}", tmpl)
	})
}

func TestGenerationOverrides(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp("")
	root := NewRootCmd(app)
	require.NoError(t, root.ParseFlags([]string{"--temperature", "0.3", "--threads", "8"}))

	flags := &tuneFlags{temperature: 0.3, topP: 0.9, threads: 8}
	temp, topP, threads := generationOverrides(root.Flags(), flags)

	require.NotNil(t, temp)
	assert.Equal(t, 0.3, *temp)
	assert.Nil(t, topP)
	require.NotNil(t, threads)
	assert.Equal(t, 8, *threads)
}

func TestRunTuneAcceptFlow(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"response": "a fine haiku", "done": true})
	}))
	t.Cleanup(server.Close)

	// Feedback: empty (done), then accept.
	app, out, _ := testApp("\ny\n")
	app.LLMConfig.Endpoint = server.URL

	promptFile := writeTemp(t, "Write a haiku about {topic}")
	varsFile := filepath.Join(t.TempDir(), "vars.json")
	require.NoError(t, os.WriteFile(varsFile, []byte(`{"topic":"rivers"}`), 0o644))

	root := NewRootCmd(app)
	root.SetArgs([]string{
		"--prompt", promptFile,
		"--vars", varsFile,
		"--model", "gemma3:1b",
		"--prompts-db", filepath.Join(t.TempDir(), "absent.db"),
	})
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Write a haiku about rivers")
	assert.Contains(t, out.String(), "a fine haiku")
	assert.Contains(t, out.String(), "accepted")
}

func TestRunTuneRequiresModelNonInteractive(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp("")
	promptFile := writeTemp(t, "plain prompt")

	root := NewRootCmd(app)
	root.SetArgs([]string{
		"--prompt", promptFile,
		"--prompts-db", filepath.Join(t.TempDir(), "absent.db"),
	})
	root.SetErr(app.Err)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--model is required")
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
