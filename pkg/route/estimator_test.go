package route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	coords map[string]Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(ctx context.Context, location string) (Coordinates, error) {
	g.calls++
	if g.err != nil {
		return Coordinates{}, g.err
	}
	c, ok := g.coords[strings.ToLower(location)]
	if !ok {
		return Coordinates{}, fmt.Errorf("location not found: %q", location)
	}
	return c, nil
}

var testDates = struct {
	start, end time.Time
}{
	start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	end:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
}

func TestEstimatorLocalRental(t *testing.T) {
	geocoder := &stubGeocoder{}
	estimator := NewEstimator(geocoder, zerolog.Nop())

	info, err := estimator.Route(context.Background(), "", "Miami", testDates.start, testDates.end)
	require.NoError(t, err)

	assert.True(t, info.Local())
	assert.Equal(t, "Miami", info.Destination)
	assert.Zero(t, info.DistanceMiles)
	assert.Zero(t, info.DriveTime)
	assert.NotEmpty(t, info.Notes)
	assert.Zero(t, geocoder.calls, "local rentals should not geocode")
}

func TestEstimatorSameOriginIsLocal(t *testing.T) {
	geocoder := &stubGeocoder{}
	estimator := NewEstimator(geocoder, zerolog.Nop())

	info, err := estimator.Route(context.Background(), "miami", "Miami", testDates.start, testDates.end)
	require.NoError(t, err)

	assert.True(t, info.Local())
	assert.Zero(t, geocoder.calls)
}

func TestEstimatorOneWayDistance(t *testing.T) {
	// New York to Boston is about 190 miles great-circle.
	geocoder := &stubGeocoder{coords: map[string]Coordinates{
		"new york": {Lat: 40.7128, Lon: -74.0060},
		"boston":   {Lat: 42.3601, Lon: -71.0589},
	}}
	estimator := NewEstimator(geocoder, zerolog.Nop())

	info, err := estimator.Route(context.Background(), "New York", "Boston", testDates.start, testDates.end)
	require.NoError(t, err)

	assert.False(t, info.Local())
	assert.InDelta(t, 245, info.DistanceMiles, 30, "road distance should be ~1.3x great-circle")
	assert.Greater(t, info.DriveTime, 3*time.Hour)
	assert.Less(t, info.DriveTime, 5*time.Hour)
	assert.Equal(t, "I-95 N", info.MainRoute)
	assert.Equal(t, 2, geocoder.calls)
}

func TestEstimatorGeocodeFailure(t *testing.T) {
	geoErr := errors.New("nominatim: status 503")
	geocoder := &stubGeocoder{err: geoErr}
	estimator := NewEstimator(geocoder, zerolog.Nop())

	_, err := estimator.Route(context.Background(), "New York", "Boston", testDates.start, testDates.end)
	require.Error(t, err)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, geoErr)
}

func TestHaversineMiles(t *testing.T) {
	// Los Angeles to New York, roughly 2440 miles great-circle.
	la := Coordinates{Lat: 34.0522, Lon: -118.2437}
	ny := Coordinates{Lat: 40.7128, Lon: -74.0060}

	assert.InDelta(t, 2440, haversineMiles(la, ny), 30)
	assert.Zero(t, haversineMiles(la, la))
}

func TestMainRoute(t *testing.T) {
	tests := []struct {
		origin      string
		destination string
		want        string
	}{
		{"New York", "Boston", "I-95 N"},
		{"Boston", "New York", "I-95 S"},
		{"Los Angeles", "San Francisco", "I-5 N"},
		{"New York", "Miami", "I-95 S"},
		{"Miami", "New York", "I-95 N"},
		{"Chicago", "Denver", "I-80 W, I-90 W"},
		{"Houston", "Miami", "I-10 E"},
		{"Springfield", "Gotham", "Major Interstates"},
	}

	for _, tt := range tests {
		t.Run(tt.origin+" to "+tt.destination, func(t *testing.T) {
			assert.Equal(t, tt.want, mainRoute(tt.origin, tt.destination))
		})
	}
}

func TestJourneyNotesCappedAndUnique(t *testing.T) {
	// A long beach-to-mountain drive qualifies for every tier of notes.
	notes := journeyNotes("Miami", "Denver", 2000, 30, false)

	assert.Len(t, notes, maxNotes)
	seen := make(map[string]bool)
	for _, n := range notes {
		assert.False(t, seen[n], "duplicate note: %s", n)
		seen[n] = true
	}
}

func TestJourneyNotesRoundTripFirst(t *testing.T) {
	notes := journeyNotes("Miami", "Miami", 0, 0, true)

	require.NotEmpty(t, notes)
	assert.Equal(t, roundTripNotes[0], notes[0])
}

func TestJourneyNotesLongDistanceTips(t *testing.T) {
	notes := journeyNotes("Springfield", "Gotham", 1600, 25, false)

	joined := strings.Join(notes, "\n")
	assert.Contains(t, joined, "long drives")
	assert.Contains(t, joined, "rest stops")
}
