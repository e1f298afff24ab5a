package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
)

// SupportedSchemaMajor is the only schema major version this build reads.
const SupportedSchemaMajor = 1

// Document is the top-level catalog payload.
type Document struct {
	SchemaVersion string `json:"schema_version,omitempty"`
	Trips         []Trip `json:"trips"`
}

// Decode reads a Document from r. The payload must be a JSON object whose
// "trips" member is an array; anything else is ErrInvalidFormat. When
// schema_version is present it must be a semantic version with major 1.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory payload.
func DecodeBytes(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	tripsRaw, ok := raw["trips"]
	if !ok {
		return nil, fmt.Errorf("%w: trips array not found", ErrInvalidFormat)
	}
	tripsRaw = bytes.TrimSpace(tripsRaw)
	if len(tripsRaw) == 0 || tripsRaw[0] != '[' {
		return nil, fmt.Errorf("%w: trips array not found", ErrInvalidFormat)
	}

	doc := &Document{}
	if err := json.Unmarshal(tripsRaw, &doc.Trips); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if versionRaw, hasVersion := raw["schema_version"]; hasVersion {
		if err := json.Unmarshal(versionRaw, &doc.SchemaVersion); err != nil {
			return nil, fmt.Errorf("%w: schema_version must be a string", ErrInvalidFormat)
		}
		if err := checkSchemaVersion(doc.SchemaVersion); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func checkSchemaVersion(v string) error {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedSchema, v)
	}
	if parsed.Major() != SupportedSchemaMajor {
		return fmt.Errorf("%w: %s (supported: %d.x)", ErrUnsupportedSchema, parsed, SupportedSchemaMajor)
	}
	return nil
}
