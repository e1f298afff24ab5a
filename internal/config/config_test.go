package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tripexplorer/internal/config"
)

// isolateHome points the config directory at a temp dir so tests never read
// the developer's real ~/.tripexplorer.
func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvConfig, "")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	dir := isolateHome(t)
	cfg := config.Default()

	assert.Equal(t, "data.json", cfg.Source.Location)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 6, cfg.UI.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Directory)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestNew_ReadsConfigFile(t *testing.T) {
	dir := isolateHome(t)
	writeFile(t, dir, "config.yaml", `
source:
  location: https://example.com/data.json
  timeout: 3s
ui:
  page_size: 9
  debounce: 150ms
`)

	cfg := config.New()
	require.NoError(t, cfg.LoadError())
	assert.Equal(t, "https://example.com/data.json", cfg.Source.Location)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 9, cfg.UI.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Debounce)
	// Untouched sections keep defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestNew_BrokenFileFallsBackToDefaults(t *testing.T) {
	dir := isolateHome(t)
	writeFile(t, dir, "config.yaml", "ui: [not, a, map")

	cfg := config.New()
	require.Error(t, cfg.LoadError())
	assert.Equal(t, config.DefaultPageSize, cfg.UI.PageSize)
}

func TestApplyEnv(t *testing.T) {
	isolateHome(t)
	env := map[string]string{
		config.EnvSource:    "trips.json",
		config.EnvPageSize:  "12",
		config.EnvLogLevel:  "debug",
		config.EnvLogFormat: "json",
		config.EnvCacheTTL:  "not-a-number",
		config.EnvAddr:      "127.0.0.1:9000",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "trips.json", cfg.Source.Location)
	assert.Equal(t, 12, cfg.UI.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, config.DefaultCacheTTL, cfg.Cache.TTLSeconds, "unparsable TTL is ignored")
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "empty source",
			mutate:  func(c *config.Config) { c.Source.Location = "" },
			wantErr: "source.location",
		},
		{
			name:    "page size too large",
			mutate:  func(c *config.Config) { c.UI.PageSize = 101 },
			wantErr: "ui.page_size",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *config.Config) { c.UI.Debounce = -time.Second },
			wantErr: "ui.debounce",
		},
		{
			name:    "ttl too small",
			mutate:  func(c *config.Config) { c.Cache.TTLSeconds = 5 },
			wantErr: "cache.ttl_seconds",
		},
		{
			name: "ttl ignored when cache disabled",
			mutate: func(c *config.Config) {
				c.Cache.Enabled = false
				c.Cache.TTLSeconds = 0
			},
		},
		{
			name:    "bad origin",
			mutate:  func(c *config.Config) { c.Server.AllowedOrigins = []string{"localhost:5173"} },
			wantErr: "server.allowed_origins",
		},
		{
			name:   "wildcard origin",
			mutate: func(c *config.Config) { c.Server.AllowedOrigins = []string{"*"} },
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	isolateHome(t)
	cfg := config.Default()
	cfg.Source.Location = ""
	cfg.UI.PageSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.location")
	assert.Contains(t, err.Error(), "ui.page_size")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolateHome(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.Default()
	cfg.UI.Debounce = 250 * time.Millisecond
	require.NoError(t, cfg.Save(path))

	loaded := config.Default()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, 250*time.Millisecond, loaded.UI.Debounce)
	assert.Equal(t, cfg.Cache, loaded.Cache)
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)

	first := config.GetGlobalConfig()
	require.NotNil(t, first)
	assert.Same(t, first, config.GetGlobalConfig())

	replacement := config.Default()
	replacement.UI.PageSize = 3
	config.SetGlobalConfig(replacement)
	assert.Equal(t, 3, config.GetPageSize())
	assert.Equal(t, config.DefaultDebounce, config.GetDebounce())
	assert.Equal(t, config.DefaultSourceLocation, config.GetSourceLocation())
}

func TestLoggingConfigConversion(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", out.Output)

	lc.File = "/tmp/tripexplorer.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/tripexplorer.log", out.File)
}
