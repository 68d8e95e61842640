package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyItem       = "item"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyTemplate   = "template"
	KeyStatus     = "status"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Item(id string) slog.Attr        { return slog.String(KeyItem, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
