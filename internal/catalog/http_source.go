package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/tripexplorer/internal/cache"
	"github.com/rshade/tripexplorer/internal/logging"
)

// maxPayloadBytes caps how much of a response body is read.
const maxPayloadBytes = 32 << 20

// HTTPSource fetches the catalog from a URL. Concurrent loads share a single
// request, and successful payloads are kept in the optional file cache.
type HTTPSource struct {
	url    string
	client *http.Client
	cache  *cache.FileStore
	logger zerolog.Logger

	maxBytes int64

	group singleflight.Group
}

// NewHTTPSource creates an HTTPSource for rawURL.
func NewHTTPSource(rawURL string, opts Options) *HTTPSource {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPSource{
		url:    rawURL,
		client: client,
		cache:  opts.Cache,
		logger: logging.ComponentLogger(opts.Logger, "catalog"),

		maxBytes: maxPayloadBytes,
	}
}

// Load returns the cached payload when fresh, otherwise fetches it. The
// shared fetch outlives any one caller's ctx and is bounded by the client
// timeout; a cancelled caller stops waiting without failing the others.
func (s *HTTPSource) Load(ctx context.Context) (*Catalog, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.url, func() (interface{}, error) {
		return s.load(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, newLoadError(s.String(), ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, newLoadError(s.String(), res.Err)
		}
		if res.Shared {
			s.logger.Debug().Ctx(ctx).Str("operation", "load").Msg("joined in-flight catalog fetch")
		}
		cat, _ := res.Val.(*Catalog)
		return cat, nil
	}
}

func (s *HTTPSource) load(ctx context.Context) (*Catalog, error) {
	if data, ok := s.fromCache(ctx); ok {
		if doc, err := DecodeBytes(data); err == nil {
			return New(doc), nil
		}
		// A corrupt entry is dropped and refetched.
		_ = s.cache.Delete(s.cacheKey())
	}

	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsEnabled() {
		if setErr := s.cache.Set(s.cacheKey(), s.url, data); setErr != nil {
			s.logger.Warn().Ctx(ctx).Err(setErr).Str("operation", "cache_set").Msg("failed to cache catalog payload")
		}
	}

	c := New(doc)
	s.logger.Debug().Ctx(ctx).
		Str("operation", "load").
		Str("url", s.url).
		Int("trips", c.Len()).
		Msg("catalog fetched")
	return c, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, s.maxBytes)
	}
	return data, nil
}

func (s *HTTPSource) fromCache(ctx context.Context) ([]byte, bool) {
	if s.cache == nil || !s.cache.IsEnabled() {
		return nil, false
	}
	entry, err := s.cache.Get(s.cacheKey())
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			s.logger.Warn().Ctx(ctx).Err(err).Str("operation", "cache_get").Msg("cache read failed")
		}
		return nil, false
	}
	s.logger.Debug().Ctx(ctx).
		Str("operation", "cache_get").
		Str("age", cache.FormatDuration(entry.Age())).
		Msg("using cached catalog payload")
	return entry.Data, true
}

// Invalidate drops the cached payload for this URL.
func (s *HTTPSource) Invalidate() error {
	if s.cache == nil || !s.cache.IsEnabled() {
		return nil
	}
	return s.cache.Delete(s.cacheKey())
}

func (s *HTTPSource) cacheKey() string {
	return cache.KeyFor("catalog", s.url)
}

func (s *HTTPSource) String() string {
	return s.url
}
