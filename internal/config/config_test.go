package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "site:\n  title: My Site\n"))
	require.NoError(t, err)

	assert.Equal(t, "My Site", cfg.Site.Title)
	assert.Equal(t, "en-US", cfg.Site.Locale)
	assert.Equal(t, "project", cfg.Site.Category)
	assert.Equal(t, 6, cfg.Site.VisibleCount)
	assert.Equal(t, "./content", cfg.Paths.Content)
	assert.Equal(t, "./src/templates", cfg.Paths.Templates)
	assert.Equal(t, "./public", cfg.Paths.Output)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `site:
  title: Reviews
  locale: sv-SE
  category: review
  visible_count: 9
  ratings: true
  resort: true
paths:
  content: ./data
  templates: ./tpl
  output: ./dist
`))
	require.NoError(t, err)
	assert.Equal(t, "review", cfg.Site.Category)
	assert.Equal(t, 9, cfg.Site.VisibleCount)
	assert.True(t, cfg.Site.Ratings)
	assert.True(t, cfg.Site.Resort)
	assert.Equal(t, "./dist", cfg.Paths.Output)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SITE_TITLE", "From Env")
	cfg, err := Load(writeConfig(t, "site:\n  title: ${SITE_TITLE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Site.Title)
}

func TestLoadReadsDotEnvWithoutLocal(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("SB_TEST_ENV_ONLY=FromDotEnv\n"), 0644))
	require.NoError(t, os.WriteFile("config.yaml", []byte("site:\n  title: ${SB_TEST_ENV_ONLY}\n"), 0644))

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.Site.Title)
}

func TestLoadDotEnvLocalWins(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env.local", []byte("SB_TEST_LAYERED=FromLocal\n"), 0644))
	require.NoError(t, os.WriteFile(".env", []byte("SB_TEST_LAYERED=FromDotEnv\n"), 0644))
	require.NoError(t, os.WriteFile("config.yaml", []byte("site:\n  title: ${SB_TEST_LAYERED}\n"), 0644))

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "FromLocal", cfg.Site.Title)
}

func TestLoadRealEnvironmentWinsOverDotEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SB_TEST_PRESET", "FromProcess")
	require.NoError(t, os.WriteFile(".env", []byte("SB_TEST_PRESET=FromDotEnv\n"), 0644))
	require.NoError(t, os.WriteFile("config.yaml", []byte("site:\n  title: ${SB_TEST_PRESET}\n"), 0644))

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "FromProcess", cfg.Site.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "site: [not: a map\n"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidLocale(t *testing.T) {
	_, err := Load(writeConfig(t, "site:\n  locale: \"!!!\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locale")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		c := Config{}
		c.applyDefaults()
		return c
	}

	t.Run("defaults pass", func(t *testing.T) {
		c := base()
		assert.NoError(t, c.Validate())
	})
	t.Run("visible count below one", func(t *testing.T) {
		c := base()
		c.Site.VisibleCount = 0
		assert.Error(t, c.Validate())
	})
	t.Run("empty category", func(t *testing.T) {
		c := base()
		c.Site.Category = ""
		assert.Error(t, c.Validate())
	})
	t.Run("empty content path", func(t *testing.T) {
		c := base()
		c.Paths.Content = ""
		assert.Error(t, c.Validate())
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My Projects", cfg.Site.Title)

	// Refuses to clobber without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
