package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tripexplorer/internal/cli"
	"github.com/rshade/tripexplorer/internal/config"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "tripexplorer", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	for _, name := range []string{"browse", "list", "show", "serve", "config", "cache"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "source", "log-level", "project-dir", "no-cache"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCmd_NoTerminalShowsHelp(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Trip Card Explorer")
	assert.Contains(t, out, "Available Commands")
}

func TestRootCmd_ConfigLayers(t *testing.T) {
	home, work := setupCLITest(t)

	// Global file, then project overlay, then --config overlay, then env, then flags.
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("ui:\n  page_size: 7\nserver:\n  addr: \":9000\"\n"), 0o600))

	projectDir := filepath.Join(work, ".tripexplorer")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("ui:\n  page_size: 8\n"), 0o600))

	overlay := filepath.Join(work, "overlay.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("logging:\n  level: warn\n  format: json\n"), 0o600))

	t.Setenv(config.EnvLogFormat, "console")

	out, err := execute(t, "config", "show", "--config", overlay, "--source", "trips.json", "--no-cache")
	require.NoError(t, err)

	assert.Contains(t, out, "page_size: 8", "project overlay replaces the ui section")
	assert.Contains(t, out, ":9000", "global file still applies to other sections")
	assert.Contains(t, out, "format: console", "env wins over the --config overlay")
	assert.Contains(t, out, "location: trips.json", "flags win over everything")
	assert.Contains(t, out, "enabled: false")
	assert.NotEmpty(t, config.GetResolvedProjectDir())
}

func TestRootCmd_BadConfigOverlay(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "config", "show", "--config", "does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading --config")
}
