package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/cache"
	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/config"
)

// errWatchRemote is returned when --watch is combined with a remote source.
var errWatchRemote = errors.New("--watch needs a local catalog file")

// newCatalogStore builds the catalog store described by cfg. An unusable
// cache directory degrades to no caching rather than failing the command.
func newCatalogStore(cfg *config.Config, log zerolog.Logger) (*catalog.Store, error) {
	fileCache, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	if err != nil {
		log.Warn().Err(err).Str("directory", cfg.Cache.Directory).Msg("catalog cache unavailable, continuing without it")
		fileCache, _ = cache.NewFileStore("", false, 0)
	}

	src, err := catalog.NewSource(cfg.Source.Location, catalog.Options{
		Timeout: cfg.Source.Timeout,
		Cache:   fileCache,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring catalog source: %w", err)
	}
	return catalog.NewStore(src), nil
}

// watchPath returns the file behind store, for --watch.
func watchPath(store *catalog.Store) (string, error) {
	fs, ok := store.Source().(*catalog.FileSource)
	if !ok {
		return "", fmt.Errorf("%w, got %s", errWatchRemote, store.Source())
	}
	return fs.Path(), nil
}
