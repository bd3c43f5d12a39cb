package route

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
)

// Estimator implements Client using geocoded great-circle distance with
// a road-length correction and region-based interstate heuristics.
type Estimator struct {
	geocoder Geocoder
	logger   zerolog.Logger
}

// NewEstimator creates a new route estimator
func NewEstimator(geocoder Geocoder, logger zerolog.Logger) *Estimator {
	return &Estimator{
		geocoder: geocoder,
		logger:   logger,
	}
}

const (
	// Road distance runs roughly 30% over the great-circle distance.
	roadFactor = 1.3
	// Average interstate pace including stops.
	averageMPH       = 65.0
	earthRadiusMiles = 3956.0
	maxNotes         = 5
)

// Route plans the journey. A missing or identical origin means a
// single-city rental: no geocoding, no distance, local insights only.
func (e *Estimator) Route(ctx context.Context, origin, destination string, start, end time.Time) (Info, error) {
	logger := tracing.LoggerFromContext(ctx, e.logger)

	if origin == "" || strings.EqualFold(origin, destination) {
		info := Info{
			Origin:      destination,
			Destination: destination,
			Notes:       journeyNotes(destination, destination, 0, 0, true),
		}
		logger.Debug().Str("destination", destination).Msg("Local rental, skipping distance estimation")
		return info, nil
	}

	from, err := e.geocoder.Geocode(ctx, origin)
	if err != nil {
		return Info{}, &UnavailableError{Err: err}
	}
	to, err := e.geocoder.Geocode(ctx, destination)
	if err != nil {
		return Info{}, &UnavailableError{Err: err}
	}

	distance := int(haversineMiles(from, to) * roadFactor)
	driveHours := float64(distance) / averageMPH
	driveTime := time.Duration(driveHours * float64(time.Hour))

	info := Info{
		Origin:        origin,
		Destination:   destination,
		DistanceMiles: distance,
		DriveTime:     driveTime,
		MainRoute:     mainRoute(origin, destination),
		Notes:         journeyNotes(origin, destination, distance, driveHours, false),
	}

	logger.Debug().
		Int("distance_miles", distance).
		Str("main_route", info.MainRoute).
		Msg("Route estimated")

	return info, nil
}

// haversineMiles is the great-circle distance between two points.
func haversineMiles(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

type region string

const (
	regionNortheast region = "northeast"
	regionSoutheast region = "southeast"
	regionMidwest   region = "midwest"
	regionSouthwest region = "southwest"
	regionWest      region = "west"
	regionUnknown   region = "unknown"
)

var statesByRegion = map[region][]string{
	regionNortheast: {"new york", "massachusetts", "connecticut", "rhode island",
		"new hampshire", "vermont", "maine", "pennsylvania",
		"new jersey", "delaware", "maryland", "district of columbia"},
	regionSoutheast: {"virginia", "north carolina", "south carolina",
		"georgia", "florida", "alabama", "mississippi",
		"louisiana", "arkansas", "tennessee", "kentucky"},
	regionMidwest: {"ohio", "michigan", "indiana", "illinois",
		"wisconsin", "minnesota", "iowa", "missouri",
		"north dakota", "south dakota", "nebraska", "kansas"},
	regionSouthwest: {"texas", "oklahoma", "new mexico", "arizona"},
	regionWest: {"california", "oregon", "washington",
		"nevada", "idaho", "montana", "wyoming",
		"colorado", "utah", "hawaii", "alaska"},
}

// Well-known cities mapped onto regions so that plain city names
// resolve without a state suffix.
var citiesByRegion = map[region][]string{
	regionNortheast: {"new york", "boston", "philadelphia", "pittsburgh", "baltimore", "washington"},
	regionSoutheast: {"miami", "orlando", "tampa", "atlanta", "nashville", "new orleans", "charlotte"},
	regionMidwest:   {"chicago", "detroit", "minneapolis", "st. louis", "kansas city", "cleveland"},
	regionSouthwest: {"dallas", "houston", "austin", "san antonio", "phoenix", "albuquerque", "tucson"},
	regionWest:      {"los angeles", "san francisco", "san diego", "seattle", "las vegas", "denver", "salt lake city"},
}

func regionOf(location string) region {
	loc := strings.ToLower(location)
	for r, states := range statesByRegion {
		for _, s := range states {
			if strings.Contains(loc, s) {
				return r
			}
		}
	}
	for r, cities := range citiesByRegion {
		for _, c := range cities {
			if strings.Contains(loc, c) {
				return r
			}
		}
	}
	return regionUnknown
}

type regionPair struct {
	from, to region
}

var interstatesByRegionPair = map[regionPair]string{
	{regionNortheast, regionSoutheast}: "I-95 S",
	{regionSoutheast, regionNortheast}: "I-95 N",
	{regionNortheast, regionMidwest}:   "I-80 W, I-90 W",
	{regionMidwest, regionNortheast}:   "I-90 E, I-80 E",
	{regionMidwest, regionWest}:        "I-80 W, I-90 W",
	{regionWest, regionMidwest}:        "I-90 E, I-80 E",
	{regionSoutheast, regionSouthwest}: "I-10 W",
	{regionSouthwest, regionSoutheast}: "I-10 E",
	{regionSouthwest, regionWest}:      "I-10 W, I-15 N",
	{regionWest, regionSouthwest}:      "I-15 S, I-10 E",
	{regionMidwest, regionSouthwest}:   "I-55 S, I-44 W, I-40 W",
	{regionSouthwest, regionMidwest}:   "I-40 E, I-44 E, I-55 N",
}

// mainRoute guesses the dominant interstate corridor between two places.
func mainRoute(origin, destination string) string {
	from := strings.ToLower(origin)
	to := strings.ToLower(destination)

	// Corridors too short for the region table.
	switch {
	case strings.Contains(from, "new york") && strings.Contains(to, "boston"):
		return "I-95 N"
	case strings.Contains(from, "boston") && strings.Contains(to, "new york"):
		return "I-95 S"
	case strings.Contains(from, "los angeles") && strings.Contains(to, "san francisco"):
		return "I-5 N"
	case strings.Contains(from, "san francisco") && strings.Contains(to, "los angeles"):
		return "I-5 S"
	}

	if route, ok := interstatesByRegionPair[regionPair{regionOf(origin), regionOf(destination)}]; ok {
		return route
	}

	return "Major Interstates"
}

var genericNotes = []string{
	"Book 2+ weeks ahead for best rates",
	"Check insurance coverage before renting",
	"Fill gas before return to avoid high fees",
	"Take photos of the car before driving off",
	"Inspect the car thoroughly before accepting",
	"Compare prices across multiple companies",
	"Check for one-way rental fees if applicable",
}

var roundTripNotes = []string{
	"Round-trip rentals typically offer better daily rates",
	"Check for unlimited mileage on round-trip rentals",
	"For multi-day trips, weekly rates are often cheaper than daily",
	"Return to the same location for best pricing",
}

var beachKeywords = []string{"miami", "beach", "florida", "hawaii", "california"}

var mountainKeywords = []string{"mountain", "ski", "denver", "colorado", "vermont"}

var urbanKeywords = []string{"new york", "chicago", "boston", "philadelphia", "san francisco"}

// journeyNotes assembles at most maxNotes tips, most specific first.
func journeyNotes(origin, destination string, distance int, driveHours float64, roundTrip bool) []string {
	var pool []string

	if roundTrip {
		pool = append(pool, roundTripNotes...)
	}

	if distance > 500 {
		pool = append(pool, "Check the vehicle's comfort for long drives")
	}
	if distance > 1000 {
		pool = append(pool,
			"Plan your route with regular rest stops every 2-3 hours",
			"Consider reserving hotels along your route in advance")
	}
	if distance > 1500 {
		pool = append(pool,
			"Verify if there are mileage limits on your rental",
			"Pack emergency supplies for long interstate drives")
	}
	if driveHours > 10 {
		pool = append(pool, fmt.Sprintf("Plan for a %d day journey with overnight stops", int(math.Ceil(driveHours/8))))
	}

	from := strings.ToLower(origin)
	to := strings.ToLower(destination)

	if containsAnyKeyword(from, to, beachKeywords) {
		pool = append(pool,
			"Request a car with good AC for hot weather",
			"Consider a convertible for beach driving")
	}
	if containsAnyKeyword(from, to, mountainKeywords) {
		pool = append(pool,
			"Consider getting a 4WD vehicle for mountain roads",
			"Check if snow chains or winter tires are needed")
	}
	if containsAnyKeyword(from, to, urbanKeywords) {
		pool = append(pool,
			"Opt for a compact car for easier parking in city areas",
			"Check if your hotel charges for parking")
	}

	pool = append(pool, genericNotes...)

	notes := make([]string, 0, maxNotes)
	seen := make(map[string]bool, maxNotes)
	for _, note := range pool {
		if seen[note] {
			continue
		}
		seen[note] = true
		notes = append(notes, note)
		if len(notes) == maxNotes {
			break
		}
	}
	return notes
}

func containsAnyKeyword(a, b string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(a, kw) || strings.Contains(b, kw) {
			return true
		}
	}
	return false
}
