package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tripexplorer/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var (
		verbose     bool
		checkSource bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the resolved configuration (global file, project overlay,
--config overlay, environment and flags) for syntax and semantic correctness.

With --check-source the catalog is also loaded, so an unreachable URL or a
malformed data file is reported here rather than in the browser.`,
		Example: `  # Validate current configuration
  tripexplorer config validate

  # Validate, load the catalog and show details
  tripexplorer config validate --check-source --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose, checkSource)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	cmd.Flags().BoolVar(&checkSource, "check-source", false, "also load the configured catalog")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose, checkSource bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.LoadError(); err != nil {
		return fmt.Errorf("configuration file could not be loaded: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	trips := -1
	if checkSource {
		store, err := newCatalogStore(cfg, logger)
		if err != nil {
			return err
		}
		snap, err := store.Reload(cmd.Context())
		if err != nil {
			return fmt.Errorf("source check failed: %w", err)
		}
		trips = snap.Catalog.Len()
		if warnings := snap.Catalog.Warnings(); len(warnings) > 0 {
			cmd.Println("Catalog warnings:")
			for _, w := range warnings {
				cmd.Printf("  - %s\n", w)
			}
			cmd.Println()
		}
	}

	cmd.Printf("Configuration is valid\n")
	if verbose {
		printVerboseDetails(cmd, cfg, trips)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
// trips is negative when the source was not loaded.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config, trips int) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Source: %s (timeout %s)\n", cfg.Source.Location, cfg.Source.Timeout)
	if trips >= 0 {
		cmd.Printf("  Trips loaded: %d\n", trips)
	}
	cmd.Printf("  Page size: %d\n", cfg.UI.PageSize)
	cmd.Printf("  Search debounce: %s\n", cfg.UI.Debounce)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %ds)\n", cfg.Cache.Directory, cfg.Cache.TTLSeconds)
	} else {
		cmd.Println("  Cache: disabled")
	}
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}

// NewConfigShowCmd creates the config show command, which prints the
// resolved configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
