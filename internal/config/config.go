package config

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Paths PathsConfig `yaml:"paths"`
}

// SiteConfig carries site-wide presentation settings and capability flags.
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url,omitempty"`
	// Locale is a BCP 47 tag used for short date formatting (e.g. "en-US", "sv-SE").
	Locale string `yaml:"locale,omitempty"`
	// Category is the output directory segment for detail pages ("project", "review", ...).
	Category string `yaml:"category,omitempty"`
	// VisibleCount is the number of listing cards shown before the show-more affordance.
	VisibleCount int `yaml:"visible_count,omitempty"`
	// Ratings enables the 0-10 rating display (stars buckets) on cards and detail pages.
	Ratings bool `yaml:"ratings,omitempty"`
	// Resort enables the client-side re-sort control on the listing page.
	Resort bool `yaml:"resort,omitempty"`
}

// PathsConfig locates the source and output trees.
type PathsConfig struct {
	Content   string `yaml:"content"`
	Templates string `yaml:"templates"`
	Assets    string `yaml:"assets,omitempty"`
	Output    string `yaml:"output"`
}

// envFiles are loaded in order; godotenv never overwrites variables that are
// already set, so earlier files win and the real environment wins over both.
var envFiles = []string{".env.local", ".env"}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err == nil {
			slog.Debug("Loaded environment file", logfields.File(envFile))
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Site"
	}
	if c.Site.Locale == "" {
		c.Site.Locale = "en-US"
	}
	if c.Site.Category == "" {
		c.Site.Category = "project"
	}
	if c.Site.VisibleCount == 0 {
		c.Site.VisibleCount = 6
	}
	if c.Paths.Content == "" {
		c.Paths.Content = "./content"
	}
	if c.Paths.Templates == "" {
		c.Paths.Templates = "./src/templates"
	}
	if c.Paths.Assets == "" {
		c.Paths.Assets = "./src"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "./public"
	}
}

// Validate rejects structurally invalid configuration before any work starts.
func (c *Config) Validate() error {
	if c.Site.VisibleCount < 1 {
		return fmt.Errorf("site.visible_count must be at least 1, got %d", c.Site.VisibleCount)
	}
	if c.Site.Category == "" {
		return fmt.Errorf("site.category must not be empty")
	}
	if _, err := language.Parse(c.Site.Locale); err != nil {
		return fmt.Errorf("site.locale %q is not a valid BCP 47 tag: %w", c.Site.Locale, err)
	}
	for name, p := range map[string]string{
		"paths.content":   c.Paths.Content,
		"paths.templates": c.Paths.Templates,
		"paths.output":    c.Paths.Output,
	} {
		if p == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:        "My Projects",
			BaseURL:      "https://example.com",
			Locale:       "en-US",
			Category:     "project",
			VisibleCount: 6,
			Ratings:      false,
			Resort:       true,
		},
		Paths: PathsConfig{
			Content:   "./content",
			Templates: "./src/templates",
			Assets:    "./src",
			Output:    "./public",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
