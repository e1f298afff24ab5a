package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/tripexplorer/internal/cache"
	"github.com/rshade/tripexplorer/internal/config"
)

// newCacheCmd creates the cache command group for the remote catalog cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the remote catalog cache",
	}
	cmd.AddCommand(newCacheInfoCmd(), newCacheClearCmd())
	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location, size and entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

			cmd.Printf("Enabled:   %t\n", cfg.Cache.Enabled)
			cmd.Printf("Directory: %s\n", cfg.Cache.Directory)
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(ttl))

			stats, err := cacheStats(cfg.Cache.Directory, cfg.Cache.TTLSeconds)
			if err != nil {
				return err
			}
			cmd.Printf("Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			cmd.Printf("Size:      %d bytes\n", stats.SizeBytes)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var (
		expiredOnly bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached catalog payloads",
		Example: `  # Remove everything, asking first
  tripexplorer cache clear

  # Remove only expired entries without asking
  tripexplorer cache clear --expired-only --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cfg.Cache.Directory == "" {
				return errors.New("no cache directory configured")
			}
			store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
			if err != nil {
				return err
			}

			if !yes {
				if !interactiveInput(cmd) {
					return errors.New("refusing to clear the cache without confirmation, re-run with --yes")
				}
				what := "all cached entries"
				if expiredOnly {
					what = "expired cached entries"
				}
				question := fmt.Sprintf("Remove %s from %s?", what, cfg.Cache.Directory)
				if res := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), question); !res.Accepted {
					cmd.Println("Aborted.")
					return nil
				}
			}

			var removed int
			if expiredOnly {
				removed, err = store.CleanupExpired()
			} else {
				removed, err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			logger.Info().Ctx(cmd.Context()).Int("removed", removed).Bool("expired_only", expiredOnly).Msg("cache cleared")
			cmd.Printf("Removed %d cache entries\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired-only", false, "only remove entries past their TTL")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

// interactiveInput reports whether the command reads from a terminal.
func interactiveInput(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	return ok && isTerminal(in)
}

// cacheStats reads stats without creating the directory when it is missing.
func cacheStats(directory string, ttlSeconds int) (cache.Stats, error) {
	if directory == "" {
		return cache.Stats{}, nil
	}
	if _, err := os.Stat(directory); errors.Is(err, os.ErrNotExist) {
		return cache.Stats{Directory: directory}, nil
	}
	store, err := cache.NewFileStore(directory, true, ttlSeconds)
	if err != nil {
		return cache.Stats{}, err
	}
	return store.Stats()
}
