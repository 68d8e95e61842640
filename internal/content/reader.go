package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"gopkg.in/yaml.v3"
)

const (
	metadataJSONFile = "metadata.json"
	metadataYAMLFile = "metadata.yaml"
	bodyFile         = "content.md"
)

// Reader enumerates content items from a source root: one immediate subdirectory
// per item, each holding a metadata record and a markdown body.
type Reader struct {
	root string
}

// NewReader creates a reader for the given content root.
func NewReader(root string) *Reader {
	return &Reader{root: filepath.Clean(root)}
}

// Discover lists candidate items and loads each one. A failing item is recorded
// and skipped; the run continues with the remaining items. The returned error is
// run-level (content root unreadable) only.
//
// Items are returned in os.ReadDir order, which is sorted by directory name, so
// discovery order is deterministic across platforms. Should two roots ever be
// merged by a caller, duplicate ids resolve last-wins.
func (r *Reader) Discover(ctx context.Context) ([]Item, []FailedItem, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, nil, fmt.Errorf("read content root %s: %w", r.root, err)
	}

	items := make([]Item, 0, len(entries))
	var failed []FailedItem

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		id := entry.Name()
		item, err := r.loadItem(id)
		if err != nil {
			slog.Warn("Skipping content item", logfields.Item(id), logfields.Error(err))
			failed = append(failed, FailedItem{ID: id, Err: err})
			continue
		}
		items = append(items, item)
		slog.Debug("Loaded content item", logfields.Item(id), logfields.Status(item.Meta.Status))
	}

	slog.Info("Content discovery completed", logfields.Count(len(items)), slog.Int("failed", len(failed)))
	return items, failed, nil
}

// loadItem reads the metadata record and the markdown body for one item.
// The two reads are independent and issued concurrently.
func (r *Reader) loadItem(id string) (Item, error) {
	dir := filepath.Join(r.root, id)

	var (
		wg      sync.WaitGroup
		meta    Metadata
		metaErr error
		body    []byte
		bodyErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		meta, metaErr = readMetadata(dir)
	}()
	go func() {
		defer wg.Done()
		body, bodyErr = readBody(dir)
	}()
	wg.Wait()

	if metaErr != nil {
		return Item{}, metaErr
	}
	if bodyErr != nil {
		return Item{}, bodyErr
	}

	return Item{ID: id, Meta: meta, Body: body}, nil
}

// readMetadata loads metadata.json, falling back to metadata.yaml when the JSON
// sidecar is absent.
func readMetadata(dir string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataJSONFile))
	if err == nil {
		var doc metadataDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return Metadata{}, fmt.Errorf("%w: %s: %v", ErrMetadataInvalid, metadataJSONFile, err)
		}
		return doc.toMetadata()
	}
	if !os.IsNotExist(err) {
		return Metadata{}, fmt.Errorf("read %s: %w", metadataJSONFile, err)
	}

	data, yerr := os.ReadFile(filepath.Join(dir, metadataYAMLFile))
	if yerr != nil {
		if os.IsNotExist(yerr) {
			return Metadata{}, fmt.Errorf("%w: neither %s nor %s present", ErrMetadataMissing, metadataJSONFile, metadataYAMLFile)
		}
		return Metadata{}, fmt.Errorf("read %s: %w", metadataYAMLFile, yerr)
	}
	var doc metadataDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %v", ErrMetadataInvalid, metadataYAMLFile, err)
	}
	return doc.toMetadata()
}

func readBody(dir string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, bodyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBodyMissing, bodyFile)
		}
		return nil, fmt.Errorf("read %s: %w", bodyFile, err)
	}
	return data, nil
}
