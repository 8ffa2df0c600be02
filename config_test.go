package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markhazleton/mark-hazleton-s-notes/scaffold"
)

func TestLoadConfig_YAMLWithEnv(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("VITE_SITE_URL", "")
	t.Setenv("BASE_PATH", "")
	t.Setenv("NOTES_OUT", "public")

	path := filepath.Join(t.TempDir(), "notes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Example
url: https://example.com/
out: ${NOTES_OUT}
remote:
  timeout: 3s
routes:
  static: [/, /blog]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "public", cfg.OutDir)
	require.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	require.Equal(t, []string{"/", "/blog"}, cfg.Routes.Static)

	cfg.setDefaults()
	require.Equal(t, "https://example.com", cfg.URL)
	require.Equal(t, "/", cfg.BasePath)
	require.Equal(t, "Example", cfg.Author.Name)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("VITE_SITE_URL", "https://vite.example.com")
	t.Setenv("BASE_PATH", "/notes/")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "https://vite.example.com", cfg.URL)
	require.Equal(t, "/notes/", cfg.BasePath)

	t.Setenv("SITE_URL", "https://site.example.com")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "https://site.example.com", cfg.URL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, 7, ExitCode(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("routes: [unclosed"), 0o644))
	_, err = LoadConfig(bad)
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, bad, cfgErr.Path)
}

func TestLoadConfig_Scaffold(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("VITE_SITE_URL", "")
	t.Setenv("BASE_PATH", "")

	dir := t.TempDir()
	_, err := scaffold.Write(dir, scaffold.Data{SiteName: "Field Notes", SiteURL: "https://notes.example.com"}, false)
	require.NoError(t, err)

	cfg, err := LoadConfig(filepath.Join(dir, "notes.yaml"))
	require.NoError(t, err)
	require.Equal(t, "Field Notes", cfg.Name)
	require.Equal(t, "https://notes.example.com", cfg.URL)
	require.Equal(t, 500*time.Millisecond, cfg.Preview.Debounce)
	require.Equal(t, DefaultStaticRoutes, cfg.Routes.Static)

	tmpl, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	_, err = ParseTemplate(string(tmpl))
	require.NoError(t, err)
}
