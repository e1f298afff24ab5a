package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Snapshot is one loaded catalog with its load time.
type Snapshot struct {
	Catalog  *Catalog
	LoadedAt time.Time
}

// Store holds the current catalog and swaps it atomically on reload, so
// readers always see a complete catalog.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty Store backed by source.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Reload loads the catalog again and replaces the current snapshot. On
// failure the previous snapshot is kept. A cache that cannot be invalidated
// is logged to the ctx logger and the load still runs.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	if inv, ok := s.source.(Invalidator); ok {
		if err := inv.Invalidate(); err != nil {
			zerolog.Ctx(ctx).Warn().Ctx(ctx).
				Err(err).
				Str("component", "catalog").
				Str("source", s.source.String()).
				Msg("failed to invalidate cached catalog, reload may serve stale data")
		}
	}
	return s.load(ctx)
}

// Load loads the catalog without invalidating caches.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	c, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Catalog: c, LoadedAt: time.Now().UTC()}
	s.current.Store(snap)
	return snap, nil
}

// Current returns the current snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Source returns the backing source.
func (s *Store) Source() Source {
	return s.source
}
