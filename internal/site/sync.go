package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// stageSyncOutputs removes detail pages whose source item no longer exists or
// is no longer eligible. The keep-set is rendered ids plus failed ids: an item
// that merely failed to read this run must not lose its published page.
// Only the detail-page directory is ever touched.
func stageSyncOutputs(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	keep := bs.RenderedIDs.Union(bs.failedIDs())

	removed, errs := syncStaleOutputs(g.detailDir(), keep)
	bs.Report.StaleRemoved = removed
	for i := 0; i < removed; i++ {
		g.recorder.IncStaleOutputRemoved()
	}
	for _, err := range errs {
		bs.Report.AddIssue(IssueSyncDeleteFailure, StageSyncOutputs, SeverityWarning, "", err.Error())
	}
	if len(errs) > 0 {
		return newWarnStageError(StageSyncOutputs, fmt.Errorf("%d stale output(s) could not be removed", len(errs)))
	}
	return nil
}

// syncStaleOutputs enumerates *.html files directly in detailDir and deletes
// every file whose name stem is not in keep. A missing directory or a file
// already gone is not an error; other deletion failures are collected and
// reported to the caller, never aborting the run.
func syncStaleOutputs(detailDir string, keep sets.Set[string]) (removed int, errs []error) {
	entries, err := os.ReadDir(detailDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, []error{fmt.Errorf("read detail directory %s: %w", detailDir, err)}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".html")
		if keep.Has(id) {
			continue
		}
		path := filepath.Join(detailDir, entry.Name())
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			slog.Warn("Failed to remove stale output", logfields.Path(path), logfields.Error(err))
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
			continue
		}
		removed++
		slog.Info("Removed stale output", logfields.Path(path), logfields.Item(id))
	}
	return removed, errs
}
