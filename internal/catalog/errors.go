package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidFormat is returned when the payload is not {"trips": [...]}.
	ErrInvalidFormat = errors.New("invalid data format")

	// ErrTripNotFound is returned by Catalog.Get for unknown IDs.
	ErrTripNotFound = errors.New("trip not found")

	// ErrUnsupportedSchema is returned for schema_version values outside 1.x.
	ErrUnsupportedSchema = errors.New("unsupported schema version")

	// ErrUnsupportedSource is returned for locations with an unknown scheme.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrPayloadTooLarge is returned when a remote catalog exceeds the read limit.
	ErrPayloadTooLarge = errors.New("catalog payload too large")
)

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// LoadError wraps any failure to load the catalog from a source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return "failed to load trips: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(source string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Source: source, Err: err}
}
