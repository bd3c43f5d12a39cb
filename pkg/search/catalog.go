package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/query"
)

// CatalogClient generates rental offers deterministically from the
// query. It stands in for the live Kayak search when no browser
// endpoint is configured: identical queries always produce identical
// offers, which also makes it the natural client for tests.
type CatalogClient struct {
	logger zerolog.Logger
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(logger zerolog.Logger) *CatalogClient {
	return &CatalogClient{logger: logger}
}

var catalogCompanies = []string{"Enterprise", "Hertz", "Avis", "Budget", "National"}

var vehicleClasses = []string{"Economy", "Compact", "Mid-size", "Full-size", "SUV", "Luxury"}

var classFeatures = map[string][]string{
	"Economy":   {"4 doors", "Good MPG", "Compact size"},
	"Compact":   {"4 doors", "Good MPG", "Easy parking"},
	"Mid-size":  {"4 doors", "Comfortable", "Moderate MPG"},
	"Full-size": {"4 doors", "Spacious", "Moderate MPG"},
	"SUV":       {"5 doors", "Cargo space", "All-weather"},
	"Luxury":    {"Premium interior", "High performance", "Advanced features"},
}

var oneWayOffers = []string{
	"Free additional driver",
	"10% discount for AAA members",
	"Free GPS navigation",
	"Free cancellation",
	"Free upgrade when available",
}

var roundTripOffers = []string{
	"Round-trip special: Free tank of gas",
	"Round-trip discount: No drop-off fees",
	"Round-trip bonus: Free vehicle upgrade",
	"Round-trip perk: Free GPS navigation",
	"Round-trip promo: 10% off weekly rates",
}

const baseDailyRate = 40.0

// Search generates the offer list for the query. It never fails except
// on context cancellation.
func (c *CatalogClient) Search(ctx context.Context, q query.Query) ([]Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Err: err}
	}

	logger := tracing.LoggerFromContext(ctx, c.logger)

	days := q.Days()
	if days < 1 {
		days = 1
	}

	seed := catalogSeed(q)
	factor := distanceFactor(q)

	offers := make([]Offer, 0, len(catalogCompanies))
	for _, company := range catalogCompanies {
		class := vehicleClasses[consistentInt(seed+"-"+company+"-type", 0, len(vehicleClasses)-1)]
		classRate := baseDailyRate + 10*float64(indexOf(vehicleClasses, class))
		variation := float64(consistentInt(seed+"-"+company+"-var", -5, 5))
		rate := classRate*factor + variation

		offer := Offer{
			Provider:       company,
			VehicleClass:   class,
			Price:          rate,
			Currency:       "USD",
			PickupLocation: pickupLocation(q),
			TotalPrice:     rate * float64(days),
			Rating:         float64(consistentInt(seed+"-"+company+"-rating", 35, 50)) / 10.0,
			Features:       classFeatures[class],
		}

		if consistentInt(seed+"-"+company+"-special", 0, 9) < 3 {
			pool := oneWayOffers
			if q.RoundTrip() {
				pool = roundTripOffers
			}
			offer.SpecialOffer = pool[consistentInt(seed+"-"+company+"-special-type", 0, len(pool)-1)]
		}

		offers = append(offers, offer)
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})

	logger.Debug().
		Int("offers", len(offers)).
		Str("location", q.Location).
		Msg("Catalog search completed")

	return offers, nil
}

func pickupLocation(q query.Query) string {
	if q.Origin != "" {
		return q.Origin
	}
	return q.Location
}

func catalogSeed(q query.Query) string {
	seed := fmt.Sprintf("%s-%s-%s",
		strings.ToLower(pickupLocation(q)),
		strings.ToLower(q.Location),
		q.StartDate.Format("2006-01-02"))
	if q.RoundTrip() {
		seed += "-roundtrip"
	}
	return seed
}

// distanceFactor scales daily rates with trip distance; round trips
// earn a discount, matching typical one-way drop-off surcharges.
func distanceFactor(q query.Query) float64 {
	if q.RoundTrip() {
		return 1.0 * 0.85
	}

	distance := estimateDistanceMiles(q.Origin, q.Location)

	factor := 1.0
	switch {
	case distance > 1500:
		factor = 1.6
	case distance > 1000:
		factor = 1.4
	case distance > 500:
		factor = 1.2
	}
	return factor
}

var eastCities = []string{"new york", "boston", "philadelphia", "washington", "miami", "atlanta"}

var westCities = []string{"los angeles", "san francisco", "seattle", "portland", "las vegas", "phoenix"}

// estimateDistanceMiles gives a coarse, deterministic distance guess
// used only for pricing; route planning has its own estimator.
func estimateDistanceMiles(origin, destination string) int {
	from := strings.ToLower(origin)
	to := strings.ToLower(destination)
	seed := from + "-" + to

	crossCountry := (containsAny(from, eastCities) && containsAny(to, westCities)) ||
		(containsAny(from, westCities) && containsAny(to, eastCities))

	if crossCountry {
		return 2500 + consistentInt(seed, -200, 200)
	}
	return 800 + consistentInt(seed, -200, 200)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// consistentInt maps a seed string onto [min, max] deterministically.
func consistentInt(seed string, min, max int) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return min + int(h.Sum32()%uint32(max-min+1))
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}
