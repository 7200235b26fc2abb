package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestPromptsExportImport(t *testing.T) {
	chdirTemp(t)

	a := newTestApp(newFakeTransport(), newMemStore())
	phrases := []string{"cat", "dog", "fox"}
	for _, phrase := range phrases {
		_, err := a.AddPrompt("g1", phrase)
		require.NoError(t, err)
	}

	require.NoError(t, a.ExportPrompts("g1"))

	other := newTestApp(newFakeTransport(), newMemStore())
	added, err := other.ImportPrompts("g1")
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	tracking, _ := other.registry.Get("g1")
	assert.Equal(t, phrases, tracking.Prompts.List())

	// Importing again adds nothing thanks to dedup.
	added, err = other.ImportPrompts("g1")
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestImportPromptsMissingFile(t *testing.T) {
	chdirTemp(t)

	a := newTestApp(newFakeTransport(), newMemStore())
	added, err := a.ImportPrompts("g1")
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestExportPromptsUnknownGuild(t *testing.T) {
	chdirTemp(t)

	a := newTestApp(newFakeTransport(), newMemStore())
	assert.Error(t, a.ExportPrompts("g1"))
}
