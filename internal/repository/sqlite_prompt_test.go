package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/prompttune/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptRepo_GetByID(t *testing.T) {
	library := testutil.NewPromptLibrary(t)
	id := testutil.SeedPrompt(t, library, "Summarize: {text}", "summarization",
		map[string]string{"text": "hello"})

	repo := NewSQLitePromptRepo(library)
	ctx := context.Background()

	entry, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Summarize: {text}", entry.Template)
	assert.Equal(t, "summarization", entry.Tag)

	vars, err := repo.Variables(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "hello"}, vars)
}

func TestPromptRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLitePromptRepo(testutil.NewPromptLibrary(t))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromptRepo_LatestPrefersNewest(t *testing.T) {
	library := testutil.NewPromptLibrary(t)
	testutil.SeedPrompt(t, library, "old {x}", "demo", nil)
	newest := testutil.SeedPrompt(t, library, "new {x}", "demo", nil)

	repo := NewSQLitePromptRepo(library)
	entry, err := repo.Latest(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, newest, entry.ID)
	assert.Equal(t, "new {x}", entry.Template)
}

func TestPromptRepo_RandomStaysWithinTag(t *testing.T) {
	library := testutil.NewPromptLibrary(t)
	testutil.SeedPrompt(t, library, "a {x}", "demo", nil)
	testutil.SeedPrompt(t, library, "b {x}", "demo", nil)
	testutil.SeedPrompt(t, library, "c {x}", "other", nil)

	repo := NewSQLitePromptRepo(library)
	for i := 0; i < 10; i++ {
		entry, err := repo.Random(context.Background(), "demo")
		require.NoError(t, err)
		assert.Equal(t, "demo", entry.Tag)
	}
}

func TestPromptRepo_List(t *testing.T) {
	library := testutil.NewPromptLibrary(t)
	testutil.SeedPrompt(t, library, "first", "a", nil)
	testutil.SeedPrompt(t, library, "second", "", nil)

	repo := NewSQLitePromptRepo(library)
	prompts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	// Newest first.
	assert.Equal(t, "second", prompts[0].Template)
	assert.Equal(t, "first", prompts[1].Template)
}

func TestPromptRepo_ListTags_CountsAndOrdering(t *testing.T) {
	library := testutil.NewPromptLibrary(t)
	testutil.SeedPrompt(t, library, "p1", "summarization", nil)
	testutil.SeedPrompt(t, library, "p2", "summarization", nil)
	testutil.SeedPrompt(t, library, "p3", "translation", nil)
	testutil.SeedPrompt(t, library, "p4", "", nil)

	repo := NewSQLitePromptRepo(library)
	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)

	require.Len(t, tags, 2)
	assert.Equal(t, "summarization", tags[0].Tag)
	assert.Equal(t, 2, tags[0].Count)
	assert.Equal(t, "translation", tags[1].Tag)
	assert.Equal(t, 1, tags[1].Count)
}
