package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeItem(t *testing.T, root, id, metadata, body string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if metadata != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(metadata), 0644))
	}
	if body != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "content.md"), []byte(body), 0644))
	}
}

func TestDiscoverLoadsItems(t *testing.T) {
	root := t.TempDir()
	writeItem(t, root, "alpha", `{"title":"Alpha","date":"2024-01-01","status":"published","tags":["go"]}`, "# Alpha\n")
	writeItem(t, root, "beta", `{"title":"Beta","date":"2024-02-01","status":"draft"}`, "# Beta\n")

	items, failed, err := NewReader(root).Discover(context.Background())
	require.NoError(t, err)
	require.Empty(t, failed)
	require.Len(t, items, 2)

	// os.ReadDir order is directory-name order.
	assert.Equal(t, "alpha", items[0].ID)
	assert.Equal(t, "beta", items[1].ID)
	assert.Equal(t, "Alpha", items[0].Meta.Title)
	assert.Equal(t, []string{"go"}, items[0].Meta.Tags)
	assert.Equal(t, "draft", items[1].Meta.Status)
	assert.Equal(t, "# Alpha\n", string(items[0].Body))
}

func TestDiscoverIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	writeItem(t, root, "good", `{"title":"Good","date":"2024-01-01","status":"published"}`, "ok\n")
	writeItem(t, root, "broken-json", `{not json`, "body\n")
	writeItem(t, root, "no-metadata", "", "body only\n")
	writeItem(t, root, "no-body", `{"title":"NB","date":"2024-01-01","status":"published"}`, "")
	writeItem(t, root, "bad-date", `{"title":"BD","date":"not-a-date","status":"published"}`, "body\n")

	items, failed, err := NewReader(root).Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "good", items[0].ID)

	require.Len(t, failed, 4)
	byID := make(map[string]error, len(failed))
	for _, f := range failed {
		byID[f.ID] = f.Err
	}
	assert.ErrorIs(t, byID["broken-json"], ErrMetadataInvalid)
	assert.ErrorIs(t, byID["no-metadata"], ErrMetadataMissing)
	assert.ErrorIs(t, byID["no-body"], ErrBodyMissing)
	assert.ErrorIs(t, byID["bad-date"], ErrMetadataInvalid)
}

func TestDiscoverYAMLFallback(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "yaml-item")
	require.NoError(t, os.MkdirAll(dir, 0755))
	yamlMeta := "title: From YAML\ndate: \"2024-03-01\"\nstatus: published\nrating: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.yaml"), []byte(yamlMeta), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.md"), []byte("body\n"), 0644))

	items, failed, err := NewReader(root).Discover(context.Background())
	require.NoError(t, err)
	require.Empty(t, failed)
	require.Len(t, items, 1)
	assert.Equal(t, "From YAML", items[0].Meta.Title)
	assert.True(t, items[0].Meta.Rating.Valid)
	assert.Equal(t, 7.0, items[0].Meta.Rating.Value)
}

func TestDiscoverJSONWinsOverYAML(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "both")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"),
		[]byte(`{"title":"JSON","date":"2024-01-01","status":"published"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.yaml"),
		[]byte("title: YAML\ndate: \"2024-01-01\"\nstatus: published\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.md"), []byte("body\n"), 0644))

	items, _, err := NewReader(root).Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "JSON", items[0].Meta.Title)
}

func TestDiscoverSkipsNonItemEntries(t *testing.T) {
	root := t.TempDir()
	writeItem(t, root, "real", `{"title":"R","date":"2024-01-01","status":"published"}`, "body\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("stray file\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0755))

	items, failed, err := NewReader(root).Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, items, 1)
	assert.Equal(t, "real", items[0].ID)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, _, err := NewReader(filepath.Join(t.TempDir(), "nope")).Discover(context.Background())
	require.Error(t, err)
}

func TestDiscoverCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeItem(t, root, "item", `{"title":"I","date":"2024-01-01","status":"published"}`, "body\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewReader(root).Discover(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
