package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tripexplorer/internal/config"
	"github.com/rshade/tripexplorer/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the tripexplorer CLI.
// It resolves configuration (global file, project overlay, --config overlay,
// environment, flags), wires up logging and tracing, and registers the
// browse, list, show, serve, config and cache subcommands.
//
// Run without a subcommand on an interactive terminal it opens the browser;
// otherwise it prints help.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "tripexplorer",
		Short:        "Browse a catalog of trips",
		Long:         "Trip Card Explorer: discover amazing destinations around the United States",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interactiveInput(cmd) && isTerminal(os.Stdout) {
				return runBrowse(cmd, browseFlags{})
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.Bool("debug", false, "enable debug logging to stderr")
	pf.String("config", "", "YAML file merged on top of the resolved configuration")
	pf.String("source", "", "catalog location: a local path or an http(s) URL (overrides config)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	pf.String("project-dir", "", "project .tripexplorer directory (default: search upward from cwd)")
	pf.Bool("no-cache", false, "bypass the remote catalog cache")

	cmd.AddCommand(
		NewBrowseCmd(), NewListCmd(), NewShowCmd(), NewServeCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Browse the catalog interactively
  tripexplorer browse

  # Browse a remote catalog, starting with a search
  tripexplorer browse --source https://example.com/data.json --search beach

  # Print the second page of trips sorted by rating
  tripexplorer list --sort rating --page 2

  # Print every match as JSON lines
  tripexplorer list -q park --page-size 100 --format ndjson

  # Show one trip
  tripexplorer show 3

  # Serve the catalog API, reloading when the file changes
  tripexplorer serve --addr :8080 --watch

  # Initialize configuration
  tripexplorer config init`

// setupConfig resolves the layered configuration and installs it as the
// global config for the rest of the command.
func setupConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	projectFlag, _ := cmd.Flags().GetString("project-dir")
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, cwd)
	config.SetResolvedProjectDir(projectDir)

	cfg := config.NewWithProjectDir(ctx, projectDir)

	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err = config.ShallowMergeYAML(cfg, overlay); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
		// Env still wins over the overlay file.
		cfg.ApplyEnv(os.LookupEnv)
	}

	applyFlagOverrides(cmd, cfg)
	config.SetGlobalConfig(cfg)
	return nil
}

// applyFlagOverrides applies persistent flags that were set explicitly.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Location, _ = flags.GetString("source")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
