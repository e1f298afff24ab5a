package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/logging"
)

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	path   string
	logger zerolog.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, logger zerolog.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logging.ComponentLogger(logger, "catalog"),
	}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, newLoadError(s.String(), err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, newLoadError(s.String(), fmt.Errorf("opening %s: %w", s.path, err))
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, newLoadError(s.String(), err)
	}

	c := New(doc)
	s.logger.Debug().Ctx(ctx).
		Str("operation", "load").
		Str("path", s.path).
		Int("trips", c.Len()).
		Msg("catalog loaded from file")
	return c, nil
}

func (s *FileSource) String() string {
	return s.path
}

// Path returns the file path being read.
func (s *FileSource) Path() string {
	return s.path
}
