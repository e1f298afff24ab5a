package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/tripexplorer/internal/config"
	"github.com/rshade/tripexplorer/internal/server"
	"github.com/rshade/tripexplorer/internal/watch"
)

type serveFlags struct {
	addr    string
	origins []string
	watch   bool
}

// NewServeCmd creates the serve command, which exposes the catalog over HTTP.
func NewServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trip catalog over HTTP",
		Long: `Serves the catalog as JSON.

  GET  /data.json        the raw catalog document
  GET  /api/trips        one page of trips (q, sort, page, page_size)
  GET  /api/trips/:id    a single trip
  POST /api/reload       reload the catalog
  GET  /api/health       liveness and catalog status

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve on the configured address
  tripexplorer serve

  # Allow a local web frontend and reload when data.json changes
  tripexplorer serve --addr 127.0.0.1:8080 --origins http://localhost:5173 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringSliceVar(&flags.origins, "origins", nil, "allowed CORS origins, or * for any (overrides config)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload the catalog when the local file changes")

	return cmd
}

func runServe(cmd *cobra.Command, flags serveFlags) error {
	cfg := config.GetGlobalConfig()
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = flags.addr
	}
	if cmd.Flags().Changed("origins") {
		cfg.Server.AllowedOrigins = flags.origins
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCatalogStore(cfg, logger)
	if err != nil {
		return err
	}
	if snap, loadErr := store.Load(ctx); loadErr != nil {
		logger.Warn().Ctx(ctx).Err(loadErr).Msg("initial catalog load failed, retrying on first request")
	} else {
		logger.Info().Ctx(ctx).Int("trips", snap.Catalog.Len()).Str("source", store.Source().String()).Msg("catalog loaded")
	}

	srv := server.New(store, server.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PageSize:       cfg.UI.PageSize,
		Logger:         logger,
	})

	var watcher *watch.FileWatcher
	if flags.watch {
		path, pathErr := watchPath(store)
		if pathErr != nil {
			return pathErr
		}
		watcher, err = watch.NewFileWatcher(path, watch.DefaultDelay, func(string) {
			snap, reloadErr := store.Reload(ctx)
			if reloadErr != nil {
				logger.Warn().Ctx(ctx).Err(reloadErr).Msg("catalog reload failed, keeping previous catalog")
				return
			}
			logger.Info().Ctx(ctx).Int("trips", snap.Catalog.Len()).Msg("catalog reloaded")
		}, logger)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}

	cmd.Printf("Serving trips on %s\n", cfg.Server.Addr)
	return g.Wait()
}
