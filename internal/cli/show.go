package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/config"
	"github.com/rshade/tripexplorer/internal/engine"
)

// NewShowCmd creates the show command, which prints a single trip.
func NewShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single trip",
		Example: `  tripexplorer show 3
  tripexplorer show 3 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, catalog.TripID(args[0]), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", string(engine.OutputTable), "output format: table, json or ndjson")

	return cmd
}

func runShow(cmd *cobra.Command, id catalog.TripID, format string) error {
	out, err := engine.ParseOutputFormat(format)
	if err != nil {
		return err
	}

	store, err := newCatalogStore(config.GetGlobalConfig(), logger)
	if err != nil {
		return err
	}
	snap, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	trip, err := snap.Catalog.Get(id)
	if err != nil {
		return err
	}

	switch out {
	case engine.OutputJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(trip)
	case engine.OutputNDJSON:
		return json.NewEncoder(cmd.OutOrStdout()).Encode(trip)
	case engine.OutputTable:
		return engine.RenderTrip(cmd.OutOrStdout(), trip)
	default:
		return fmt.Errorf("%w: %q", engine.ErrUnsupportedFormat, out)
	}
}
