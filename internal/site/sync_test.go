package site

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStaleOutputsRemovesUnkept(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"keep.html", "stale-1.html", "stale-2.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	removed, errs := syncStaleOutputs(dir, sets.New("keep"))
	assert.Equal(t, 2, removed)
	assert.Empty(t, errs)

	assert.FileExists(t, filepath.Join(dir, "keep.html"))
	assert.NoFileExists(t, filepath.Join(dir, "stale-1.html"))
	assert.NoFileExists(t, filepath.Join(dir, "stale-2.html"))
	// Non-html files and subdirectories are out of scope.
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestSyncStaleOutputsKeepsFailedIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flaky.html"), []byte("x"), 0644))

	// A failed read this run keeps its previously published page.
	removed, errs := syncStaleOutputs(dir, sets.New[string]().Union(sets.New("flaky")))
	assert.Zero(t, removed)
	assert.Empty(t, errs)
	assert.FileExists(t, filepath.Join(dir, "flaky.html"))
}

func TestSyncStaleOutputsMissingDir(t *testing.T) {
	removed, errs := syncStaleOutputs(filepath.Join(t.TempDir(), "absent"), sets.New[string]())
	assert.Zero(t, removed)
	assert.Empty(t, errs)
}
