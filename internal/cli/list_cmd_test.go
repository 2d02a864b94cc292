package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileLibrary creates a file-backed prompt library the way the external
// prompt manager would, so the list command can open it by path.
func newFileLibrary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.db")

	database, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`CREATE TABLE prompts (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		template TEXT NOT NULL,
		tag      TEXT
	)`)
	require.NoError(t, err)
	_, err = database.Exec(`CREATE TABLE prompt_variables (
		prompt_id INTEGER NOT NULL REFERENCES prompts(id),
		var_name  TEXT NOT NULL,
		var_value TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO prompts (template, tag) VALUES
		('Summarize {text}', 'summary'),
		('Write a haiku about {topic}', 'poetry'),
		('Condense {text} to one line', 'summary')`)
	require.NoError(t, err)

	return path
}

func TestListCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints prompts and tag counts", func(t *testing.T) {
		t.Parallel()

		app, out, _ := testApp("")
		root := NewRootCmd(app)
		root.SetArgs([]string{"list", "--prompts-db", newFileLibrary(t)})
		root.SetOut(app.Out)
		root.SetErr(app.Err)

		require.NoError(t, root.Execute())

		assert.Contains(t, out.String(), "Summarize {text}")
		assert.Contains(t, out.String(), "poetry")
		assert.Contains(t, out.String(), "2 prompt(s)")
	})

	t.Run("missing library is an error", func(t *testing.T) {
		t.Parallel()

		app, _, _ := testApp("")
		root := NewRootCmd(app)
		root.SetArgs([]string{"list", "--prompts-db", filepath.Join(t.TempDir(), "absent.db")})
		root.SetErr(app.Err)

		assert.Error(t, root.Execute())
	})
}
