package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tripexplorer/internal/config"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		env        map[string]string
		configFile string
		withTrips  bool
		wantErr    string
		wantOut    []string
	}{
		{
			name:    "defaults are valid",
			wantOut: []string{"Configuration is valid"},
		},
		{
			name:    "verbose details",
			args:    []string{"--verbose"},
			wantOut: []string{"Configuration details:", "Page size: 6", "Search debounce: 300ms"},
		},
		{
			name:    "page size out of range",
			env:     map[string]string{config.EnvPageSize: "0"},
			wantErr: "ui.page_size",
		},
		{
			name:       "unparsable file",
			configFile: "ui: [not, a, map\n",
			wantErr:    "could not be loaded",
		},
		{
			name:      "source check loads the catalog",
			args:      []string{"--check-source", "--verbose", "--source", "data.json"},
			withTrips: true,
			wantOut:   []string{"Configuration is valid", "Trips loaded: 4"},
		},
		{
			name:    "source check fails for a missing file",
			args:    []string{"--check-source", "--source", "missing.json"},
			wantErr: "source check failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, work := setupCLITest(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.configFile != "" {
				require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(tt.configFile), 0o600))
			}
			if tt.withTrips {
				writeTrips(t, work, 4)
			}

			out, err := execute(t, append([]string{"config", "validate"}, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "source:")
	assert.Contains(t, out, "location: data.json")
	assert.Contains(t, out, "page_size: 6")
	assert.Contains(t, out, "debounce: 300ms")
}
