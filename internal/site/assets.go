package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// assetDirs maps source subdirectories under the assets root to their output
// names, with the extensions copied from each.
var assetDirs = []struct {
	src  string
	dst  string
	exts []string
}{
	{src: "styles", dst: "styles", exts: []string{".css"}},
	{src: "js", dst: "js", exts: []string{".js"}},
}

// stageCopyAssets mirrors styles and scripts from the assets root into the
// output tree. The assets root itself must exist; individual subdirectories
// are optional (a site without scripts is fine).
func stageCopyAssets(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	root := g.cfg.Paths.Assets
	if root == "" {
		return nil
	}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return newFatalStageError(StageCopyAssets, fmt.Errorf("assets directory not found: %s", root))
		}
		return newFatalStageError(StageCopyAssets, fmt.Errorf("stat assets directory %s: %w", root, err))
	}

	copied := 0
	for _, d := range assetDirs {
		srcDir := filepath.Join(root, d.src)
		if _, err := os.Stat(srcDir); os.IsNotExist(err) {
			slog.Debug("Asset directory absent, skipping", logfields.Path(srcDir))
			continue
		}
		n, err := copyAssetTree(srcDir, filepath.Join(g.outputDir, d.dst), d.exts)
		if err != nil {
			bs.Report.AddIssue(IssueAssetsMissing, StageCopyAssets, SeverityWarning, "", err.Error())
			return newWarnStageError(StageCopyAssets, err)
		}
		copied += n
	}
	slog.Info("Copied static assets", logfields.Count(copied))
	return nil
}

// copyAssetTree recursively copies files with matching extensions from src to
// dst, preserving the directory layout.
func copyAssetTree(src, dst string, exts []string) (int, error) {
	copied := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !hasExt(info.Name(), exts) {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy assets from %s: %w", src, err)
	}
	return copied, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
