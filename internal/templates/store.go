// Package templates implements the site's placeholder templating: {{ name }}
// markers substituted from a field map. Unknown placeholders are left in the
// output untouched so a typo is visible in the page rather than silently dropped.
package templates

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
)

// Template names known to the build. Each maps to <templates-dir>/<name>.html.
const (
	TemplateDetail = "detail"
	TemplateIndex  = "index"
	TemplateAbout  = "about"
	TemplateHeader = "header"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Fields is the substitution payload for one Apply call. Values are inserted
// verbatim; callers escape untrusted text with EscapeField first.
type Fields map[string]string

// Store loads template files from a directory and caches them for the run.
type Store struct {
	dir   string
	cache map[string]string
}

// NewStore creates a template store rooted at dir. Templates are loaded lazily;
// a missing file surfaces on first use.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir), cache: make(map[string]string)}
}

// Get returns the raw template text for name, reading it from disk on first use.
func (s *Store) Get(name string) (string, error) {
	if tpl, ok := s.cache[name]; ok {
		return tpl, nil
	}
	path := filepath.Join(s.dir, name+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	s.cache[name] = string(data)
	return s.cache[name], nil
}

// Apply loads the named template and substitutes fields into it.
func (s *Store) Apply(name string, fields Fields) (string, error) {
	tpl, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return Substitute(tpl, fields), nil
}

// Header renders the shared header fragment with the active-nav class set for
// the given page ("home", "about", or a detail category).
func (s *Store) Header(activePage string) (string, error) {
	homeActive, aboutActive := "", ""
	switch activePage {
	case "home":
		homeActive = `class="active"`
	case "about":
		aboutActive = `class="active"`
	}
	return s.Apply(TemplateHeader, Fields{
		"homeActive":  homeActive,
		"aboutActive": aboutActive,
	})
}

// Substitute replaces every known {{ name }} placeholder in tpl with its field
// value. Placeholders without a matching field are left as-is.
func Substitute(tpl string, fields Fields) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if val, ok := fields[key]; ok {
			return val
		}
		return match
	})
}

// EscapeField HTML-escapes untrusted user text (titles, descriptions, tags)
// before substitution. The upstream tool substituted these raw; escaping here
// is a deliberate hardening change.
func EscapeField(s string) string {
	return html.EscapeString(s)
}
