package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/cache"
)

// Source loads a catalog from somewhere.
type Source interface {
	// Load reads and decodes the catalog. Failures are *LoadError.
	Load(ctx context.Context) (*Catalog, error)
	// String describes the source for logs and messages.
	String() string
}

// Invalidator is implemented by sources that hold cached payloads. Store.Reload
// calls Invalidate before loading so an explicit reload always refetches.
type Invalidator interface {
	Invalidate() error
}

// Options configures NewSource.
type Options struct {
	// Timeout bounds a single HTTP fetch. Zero means no timeout.
	Timeout time.Duration
	// Cache stores remote payloads. Nil or disabled means no caching.
	Cache *cache.FileStore
	// HTTPClient overrides the client used for remote sources.
	HTTPClient *http.Client
	// Logger receives load diagnostics.
	Logger zerolog.Logger
}

// NewSource picks a Source implementation for location: http(s) URLs become
// an HTTPSource, file:// URLs and bare paths become a FileSource.
func NewSource(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnsupportedSource)
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Bare path (a one-letter scheme is a Windows drive letter).
		return NewFileSource(location, opts.Logger), nil
	}

	switch u.Scheme {
	case "http", "https":
		return NewHTTPSource(location, opts), nil
	case "file":
		return NewFileSource(u.Path, opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}
