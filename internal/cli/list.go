package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/tripexplorer/internal/cli/pagination"
	"github.com/rshade/tripexplorer/internal/config"
	"github.com/rshade/tripexplorer/internal/engine"
)

// NewListCmd creates the list command, the non-interactive counterpart of
// browse: it prints one page of the filtered, optionally sorted catalog.
func NewListCmd() *cobra.Command {
	params := pagination.NewParams(config.DefaultPageSize)
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of trips",
		Long: `Prints one page of trips using the same search, sort and paging rules as
the interactive browser. A page past the end prints nothing rather than
being clamped.`,
		Example: `  # First page, catalog order
  tripexplorer list

  # Trips whose name contains "beach", best rated first
  tripexplorer list -q beach --sort rating

  # Page 3 as JSON, including the pagination window
  tripexplorer list --page 3 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, params, format)
		},
	}

	cmd.Flags().StringVarP(&params.Term, "search", "q", "", "case-insensitive substring of the trip name")
	pagination.RegisterFlags(cmd, params)
	cmd.Flags().StringVarP(&format, "format", "o", string(engine.OutputTable), "output format: table, json or ndjson")

	return cmd
}

func runList(cmd *cobra.Command, params *pagination.Params, format string) error {
	cfg := config.GetGlobalConfig()
	if !cmd.Flags().Changed("page-size") {
		params.PageSize = cfg.UI.PageSize
	}

	out, err := engine.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	q, err := params.ToQuery()
	if err != nil {
		return err
	}

	store, err := newCatalogStore(cfg, logger)
	if err != nil {
		return err
	}
	snap, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	res := engine.Compute(snap.Catalog.Trips(), q)
	logger.Debug().Ctx(cmd.Context()).
		Str("term", q.Term).
		Bool("sort_by_rating", q.SortByRating).
		Int("page", res.Page).
		Int("matches", res.TotalCount).
		Msg("listed trips")

	return engine.RenderResults(cmd.OutOrStdout(), out, q, res)
}
