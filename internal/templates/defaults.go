package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed defaults/*.html
var defaultTemplates embed.FS

// WriteDefaults materializes the built-in starter templates into dir, creating
// it if needed. Existing files are preserved unless force is set.
func WriteDefaults(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create templates directory: %w", err)
	}
	entries, err := fs.ReadDir(defaultTemplates, "defaults")
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, entry := range entries {
		dst := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		data, err := fs.ReadFile(defaultTemplates, "defaults/"+entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("write template %s: %w", dst, err)
		}
	}
	return nil
}
