package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "trips": [
    {"id": 1, "name": "Paris Getaway", "description": "City of light", "long_description": "# Paris\nSee the **Louvre**.", "image": "https://img.example.com/paris.jpg", "rating": 4.5},
    {"id": 2, "name": "Rome", "description": "Eternal city", "long_description": "Colosseum", "image": "https://img.example.com/rome.jpg", "rating": 4.5},
    {"id": "oslo", "name": "Oslo", "description": "Fjords", "long_description": "", "image": "", "rating": 3}
  ]
}`

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantErr   error
		wantTrips int
	}{
		{name: "valid", payload: sampleDocument, wantTrips: 3},
		{name: "empty trips", payload: `{"trips": []}`, wantTrips: 0},
		{name: "missing trips", payload: `{"items": []}`, wantErr: ErrInvalidFormat},
		{name: "trips not array", payload: `{"trips": {"id": 1}}`, wantErr: ErrInvalidFormat},
		{name: "trips null", payload: `{"trips": null}`, wantErr: ErrInvalidFormat},
		{name: "top-level array", payload: `[{"id": 1}]`, wantErr: ErrInvalidFormat},
		{name: "not json", payload: `<html>`, wantErr: ErrInvalidFormat},
		{name: "schema 1.x", payload: `{"schema_version": "1.2.0", "trips": []}`, wantTrips: 0},
		{name: "schema 2.x", payload: `{"schema_version": "2.0.0", "trips": []}`, wantErr: ErrUnsupportedSchema},
		{name: "schema garbage", payload: `{"schema_version": "latest", "trips": []}`, wantErr: ErrUnsupportedSchema},
		{name: "schema not string", payload: `{"schema_version": 1, "trips": []}`, wantErr: ErrInvalidFormat},
		{name: "null id", payload: `{"trips": [{"id": null, "name": "x"}]}`, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.payload))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc.Trips, tt.wantTrips)
		})
	}
}

func TestDecode_MissingTripsMessage(t *testing.T) {
	_, err := DecodeBytes([]byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, "invalid data format: trips array not found", err.Error())
}

func TestTripID(t *testing.T) {
	doc, err := DecodeBytes([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, TripID("1"), doc.Trips[0].ID)
	assert.Equal(t, TripID("oslo"), doc.Trips[2].ID)
}

func TestTripID_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantID TripID
	}{
		{name: "number", id: `42`, wantID: "42"},
		{name: "numeric string", id: `"42"`, wantID: "42"},
		{name: "leading zeros", id: `"007"`, wantID: "007"},
		{name: "signed string", id: `"+5"`, wantID: "+5"},
		{name: "word", id: `"oslo"`, wantID: "oslo"},
		{name: "negative number", id: `-3`, wantID: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"trips": [{"id": ` + tt.id + `, "name": "Trip", "rating": 4}]}`
			doc, err := DecodeBytes([]byte(payload))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, doc.Trips[0].ID)

			out, err := json.Marshal(New(doc).Document())
			require.NoError(t, err)
			assert.Contains(t, string(out), `"id":`+tt.id+`,`)

			again, err := DecodeBytes(out)
			require.NoError(t, err)
			assert.Equal(t, doc.Trips, again.Trips)
		})
	}
}

func TestTrip_MarshalConstructed(t *testing.T) {
	out, err := json.Marshal(Trip{ID: "3", Name: "Rome", Rating: 4.5})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"3","name":"Rome","description":"","long_description":"","image":"","rating":4.5}`,
		string(out))
}

func TestCatalog(t *testing.T) {
	doc, err := DecodeBytes([]byte(sampleDocument))
	require.NoError(t, err)
	c := New(doc)

	assert.Equal(t, 3, c.Len())
	assert.Empty(t, c.Warnings())

	trip, err := c.Get("oslo")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", trip.Name)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, ErrTripNotFound)

	// Trips returns a copy.
	trips := c.Trips()
	trips[0].Name = "changed"
	assert.Equal(t, "Paris Getaway", c.Trips()[0].Name)
}

func TestCatalog_Warnings(t *testing.T) {
	c := New(&Document{Trips: []Trip{
		{ID: "1", Name: "A", Rating: 4},
		{ID: "1", Name: "B", Rating: 3},
		{ID: "2", Name: " ", Rating: 6},
	}})

	warnings := c.Warnings()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "duplicate id")
	assert.Contains(t, warnings[1], "empty name")
	assert.Contains(t, warnings[2], "outside")

	// First occurrence wins.
	trip, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "A", trip.Name)
	assert.Equal(t, 3, c.Len())
}

func TestTrip_Stars(t *testing.T) {
	tests := []struct {
		rating              float64
		full, half, empty int
	}{
		{rating: 0, full: 0, half: 0, empty: 5},
		{rating: 3, full: 3, half: 0, empty: 2},
		{rating: 3.4, full: 3, half: 0, empty: 2},
		{rating: 3.5, full: 3, half: 1, empty: 1},
		{rating: 4.9, full: 4, half: 1, empty: 0},
		{rating: 5, full: 5, half: 0, empty: 0},
		{rating: 7, full: 5, half: 0, empty: 0},
		{rating: -1, full: 0, half: 0, empty: 5},
	}

	for _, tt := range tests {
		full, half, empty := Trip{Rating: tt.rating}.Stars()
		assert.Equal(t, tt.full, full, "full for %v", tt.rating)
		assert.Equal(t, tt.half, half, "half for %v", tt.rating)
		assert.Equal(t, tt.empty, empty, "empty for %v", tt.rating)
	}
}

func TestTrip_ImageURL(t *testing.T) {
	_, ok := Trip{Image: "https://img.example.com/a.jpg"}.ImageURL()
	assert.True(t, ok)

	for _, bad := range []string{"", "not a url", "/relative.jpg", "ftp://host/a.jpg", "https://"} {
		_, ok = Trip{Image: bad}.ImageURL()
		assert.False(t, ok, bad)
	}
}

func TestLoadError(t *testing.T) {
	err := newLoadError("src", &StatusError{Code: 404})
	assert.Equal(t, "failed to load trips: HTTP error! status: 404", err.Error())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Code)

	// Already wrapped errors are not double wrapped.
	assert.Same(t, err, newLoadError("other", err))
}
