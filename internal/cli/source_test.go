package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTemplateInteractive(t *testing.T) {
	t.Parallel()

	t.Run("blank line terminates", func(t *testing.T) {
		t.Parallel()

		in := strings.NewReader("Summarize {text}\nin {style} style.\n\nignored\n")
		var out bytes.Buffer

		got, err := readTemplateInteractive(in, &out)
		require.NoError(t, err)
		assert.Equal(t, "Summarize {text}\nin {style} style.", got)
	})

	t.Run("eof after content terminates", func(t *testing.T) {
		t.Parallel()

		got, err := readTemplateInteractive(strings.NewReader("one line"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "one line", got)
	})

	t.Run("empty entry is an error", func(t *testing.T) {
		t.Parallel()

		_, err := readTemplateInteractive(strings.NewReader("\n"), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestLoadVarsFile(t *testing.T) {
	t.Parallel()

	t.Run("valid json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vars.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"text":"abc","style":"terse"}`), 0o644))

		vars := loadVarsFile(&bytes.Buffer{}, path)
		assert.Equal(t, map[string]string{"text": "abc", "style": "terse"}, vars)
	})

	t.Run("missing file yields nil without warning", func(t *testing.T) {
		t.Parallel()

		var errOut bytes.Buffer
		vars := loadVarsFile(&errOut, filepath.Join(t.TempDir(), "absent.json"))
		assert.Nil(t, vars)
		assert.Empty(t, errOut.String())
	})

	t.Run("malformed json warns and yields empty map", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vars.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"text": `), 0o644))

		var errOut bytes.Buffer
		vars := loadVarsFile(&errOut, path)
		assert.NotNil(t, vars)
		assert.Empty(t, vars)
		assert.Contains(t, errOut.String(), "not valid JSON")
	})
}

func TestOfferSave(t *testing.T) {
	t.Parallel()

	t.Run("declined does nothing", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		err := offerSave(strings.NewReader("n\n"), &out, "tmpl", nil)
		assert.NoError(t, err)
	})

	t.Run("writes template and vars", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tmplPath := filepath.Join(dir, "out.txt")
		varsPath := filepath.Join(dir, "out.json")
		in := strings.NewReader("y\n" + tmplPath + "\n" + varsPath + "\n")

		var out bytes.Buffer
		err := offerSave(in, &out, "Summarize {text}", map[string]string{"text": "abc"})
		require.NoError(t, err)

		data, err := os.ReadFile(tmplPath)
		require.NoError(t, err)
		assert.Equal(t, "Summarize {text}", string(data))

		varsData, err := os.ReadFile(varsPath)
		require.NoError(t, err)
		assert.Contains(t, string(varsData), `"text": "abc"`)
	})

	t.Run("blank vars filename skips vars", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tmplPath := filepath.Join(dir, "out.txt")
		in := strings.NewReader("y\n" + tmplPath + "\n\n")

		err := offerSave(in, &bytes.Buffer{}, "tmpl", map[string]string{"k": "v"})
		require.NoError(t, err)
		assert.FileExists(t, tmplPath)
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "first", preview("first\nsecond"))

	long := strings.Repeat("x", previewWidth+10)
	got := preview(long)
	assert.Equal(t, previewWidth, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
