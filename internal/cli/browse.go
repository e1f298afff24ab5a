package cli

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/tripexplorer/internal/config"
	"github.com/rshade/tripexplorer/internal/tui"
	"github.com/rshade/tripexplorer/internal/watch"
)

// errNotInteractive is returned when browse runs without a terminal.
var errNotInteractive = errors.New("browse needs an interactive terminal; use 'tripexplorer list' instead")

type browseFlags struct {
	search       string
	sortByRating bool
	watch        bool
}

// NewBrowseCmd creates the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	var flags browseFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse trips interactively",
		Long: `Opens the full-screen trip browser.

Type / to search by name, s to sort by rating, n and p to change page, arrow
keys to move between cards and enter to open the selected trip. With --watch
the catalog is reloaded whenever the local file changes.`,
		Example: `  # Browse the configured catalog
  tripexplorer browse

  # Start filtered and sorted
  tripexplorer browse --search park --sort-by-rating

  # Reload on save while editing data.json
  tripexplorer browse --source ./data.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.search, "search", "q", "", "initial search term")
	cmd.Flags().BoolVar(&flags.sortByRating, "sort-by-rating", false, "start sorted by rating, highest first")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload the catalog when the local file changes")

	return cmd
}

func runBrowse(cmd *cobra.Command, flags browseFlags) error {
	if !isTerminal(os.Stdout) {
		return errNotInteractive
	}

	cfg := config.GetGlobalConfig()
	uiLogger := interactiveLogger()

	store, err := newCatalogStore(cfg, uiLogger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(cmd.Context())
	ctx, cancel := context.WithCancel(gctx)
	defer cancel()

	opts := tui.BrowserOptions{
		PageSize:      cfg.UI.PageSize,
		Debounce:      cfg.UI.Debounce,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		InitialTerm:   flags.search,
		SortByRating:  flags.sortByRating,
		Logger:        uiLogger,
	}
	factory := func() tea.Model { return tui.NewBrowserModel(ctx, store, opts) }

	p := tea.NewProgram(
		tui.NewBoundary(factory, uiLogger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if flags.watch {
		path, pathErr := watchPath(store)
		if pathErr != nil {
			return pathErr
		}
		w, watchErr := watch.NewFileWatcher(path, watch.DefaultDelay, func(string) {
			p.Send(tui.ReloadMsg{})
		}, uiLogger)
		if watchErr != nil {
			return watchErr
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		defer cancel()
		_, runErr := p.Run()
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return runErr
	})

	return g.Wait()
}
