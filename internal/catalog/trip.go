package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
)

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// TripID identifies a trip. The document may encode it as a JSON number or
// string; both are normalised to their string form. Trip remembers which
// kind it was decoded from so encoding writes the same kind back.
type TripID string

// UnmarshalJSON accepts both numeric and string IDs.
func (id *TripID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("trip id must not be null")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("trip id: %w", err)
		}
		*id = TripID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("trip id must be a number or string: %w", err)
	}
	*id = TripID(n.String())
	return nil
}

func (id TripID) String() string {
	return string(id)
}

// Trip is one catalog entry. Trips are never mutated after loading.
type Trip struct {
	ID              TripID  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description"`
	Image           string  `json:"image"`
	Rating          float64 `json:"rating"`

	numericID bool
}

// UnmarshalJSON decodes a trip and records whether its id was a JSON number.
func (t *Trip) UnmarshalJSON(data []byte) error {
	type Alias Trip
	aux := &struct {
		ID json.RawMessage `json:"id"`

		*Alias
	}{
		Alias: (*Alias)(t),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	t.ID, t.numericID = "", false
	if aux.ID == nil {
		return nil
	}
	if err := t.ID.UnmarshalJSON(aux.ID); err != nil {
		return err
	}
	t.numericID = bytes.TrimSpace(aux.ID)[0] != '"'
	return nil
}

// MarshalJSON writes the id as a number only when it was decoded from one.
func (t Trip) MarshalJSON() ([]byte, error) {
	type Alias Trip
	id, err := json.Marshal(string(t.ID))
	if err != nil {
		return nil, err
	}
	if t.numericID {
		id = []byte(t.ID)
	}
	return json.Marshal(&struct {
		ID json.RawMessage `json:"id"`

		*Alias
	}{
		Alias: (*Alias)(&t),
		ID:    id,
	})
}

// Stars splits the rating into full, half and empty star counts that always
// add up to five. A half star is shown when the fractional part is at least .5.
//
//nolint:nonamedreturns // Named returns document the three counts.
func (t Trip) Stars() (full, half, empty int) {
	r := math.Max(MinRating, math.Min(MaxRating, t.Rating))
	full = int(math.Floor(r))
	if r-float64(full) >= 0.5 {
		half = 1
	}
	empty = int(MaxRating) - full - half
	return full, half, empty
}

// ImageURL returns the parsed image URL, or false when the image is missing
// or not an absolute http(s) URL.
func (t Trip) ImageURL() (*url.URL, bool) {
	if t.Image == "" {
		return nil, false
	}
	u, err := url.Parse(t.Image)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}
	return u, true
}
