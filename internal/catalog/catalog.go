package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, indexed trip list.
type Catalog struct {
	schemaVersion string
	trips         []Trip
	byID          map[TripID]int
	warnings      []string
}

// New builds a Catalog from a decoded document. Data problems that do not
// prevent browsing are recorded as warnings rather than failing the load:
// duplicate IDs (the first occurrence wins for Get), ratings outside [0,5]
// and empty names.
func New(doc *Document) *Catalog {
	c := &Catalog{
		trips: make([]Trip, len(doc.Trips)),
		byID:  make(map[TripID]int, len(doc.Trips)),
	}
	c.schemaVersion = doc.SchemaVersion
	copy(c.trips, doc.Trips)

	for i, t := range c.trips {
		if _, dup := c.byID[t.ID]; dup {
			c.warnings = append(c.warnings, fmt.Sprintf("trip %d: duplicate id %q", i, t.ID))
		} else {
			c.byID[t.ID] = i
		}
		if strings.TrimSpace(t.Name) == "" {
			c.warnings = append(c.warnings, fmt.Sprintf("trip %q: empty name", t.ID))
		}
		if t.Rating < MinRating || t.Rating > MaxRating {
			c.warnings = append(c.warnings,
				fmt.Sprintf("trip %q: rating %g outside [%g,%g]", t.ID, t.Rating, MinRating, MaxRating))
		}
	}
	return c
}

// Trips returns a copy of the trips in document order.
func (c *Catalog) Trips() []Trip {
	out := make([]Trip, len(c.trips))
	copy(out, c.trips)
	return out
}

// Len returns the number of trips.
func (c *Catalog) Len() int {
	return len(c.trips)
}

// Get returns the trip with the given id.
func (c *Catalog) Get(id TripID) (Trip, error) {
	i, ok := c.byID[id]
	if !ok {
		return Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return c.trips[i], nil
}

// SchemaVersion returns the document's schema_version, or "" if absent.
func (c *Catalog) SchemaVersion() string {
	return c.schemaVersion
}

// Warnings returns non-fatal data problems found while indexing.
func (c *Catalog) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Document returns the catalog as a document suitable for re-encoding.
func (c *Catalog) Document() Document {
	return Document{SchemaVersion: c.schemaVersion, Trips: c.Trips()}
}
