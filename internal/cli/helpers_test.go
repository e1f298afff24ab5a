package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/tripexplorer/internal/cli"
	"github.com/rshade/tripexplorer/internal/config"
)

// setupCLITest isolates a test from the user's configuration: it points
// TRIPEXPLORER_HOME at a temp dir, moves into a fresh working directory and
// resets global state afterwards. It returns the home and working dirs.
func setupCLITest(t *testing.T) (string, string) {
	t.Helper()

	home := t.TempDir()
	work := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvSource, "")
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Chdir(work)

	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home, work
}

// writeTrips writes a catalog of n trips named "Trip 1".."Trip n" to
// dir/data.json. Ratings cycle 1..5.
func writeTrips(t *testing.T, dir string, n int) string {
	t.Helper()
	trips := make([]string, n)
	for i := range trips {
		trips[i] = fmt.Sprintf(
			`{"id": %d, "name": "Trip %d", "description": "Short %d", "long_description": "Long %d", "rating": %d}`,
			i+1, i+1, i+1, i+1, i%5+1)
	}
	path := filepath.Join(dir, "data.json")
	body := `{"trips": [` + strings.Join(trips, ",") + `]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}
