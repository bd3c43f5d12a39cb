package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harun/roadscout/pkg/query"
)

func testQuery(origin, location string) query.Query {
	return query.Query{
		Location:  location,
		Origin:    origin,
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
	}
}

// TestKayakURL_RoundTrip tests the single-city URL form
func TestKayakURL_RoundTrip(t *testing.T) {
	url := KayakURL(testQuery("", "Miami"))

	assert.Equal(t, "https://www.kayak.com/cars/miami/2024-06-01/2024-06-05?sort=price_a", url)
}

// TestKayakURL_OneWay tests the from-to URL form
func TestKayakURL_OneWay(t *testing.T) {
	url := KayakURL(testQuery("New York", "Boston"))

	assert.Equal(t, "https://www.kayak.com/cars/new-york-to-boston/2024-06-01/2024-06-05?sort=price_a", url)
}

// TestSanitizeLocation tests slug cleanup edge cases
func TestSanitizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Miami", "miami"},
		{"San Francisco, CA", "san-francisco-ca"},
		{"Coeur d'Alene", "coeur-dalene"},
		{"  Salt  Lake   City ", "salt-lake-city"},
		{"!!!", "united-states"},
		{"", "united-states"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLocation(tt.in), "input %q", tt.in)
	}
}

// TestParseOfferText_FullRow tests extraction from a well-formed row
func TestParseOfferText_FullRow(t *testing.T) {
	text := "Hertz\nMid-size car\n4.2/5\n$45/day\n$180 total"

	offer, ok := parseOfferText(text, "Miami", 4)

	assert.True(t, ok)
	assert.Equal(t, "Hertz", offer.Provider)
	assert.Equal(t, "Mid-size", offer.VehicleClass)
	assert.Equal(t, 45.0, offer.Price)
	assert.Equal(t, 180.0, offer.TotalPrice)
	assert.Equal(t, 4.2, offer.Rating)
	assert.Equal(t, "Miami", offer.PickupLocation)
}

// TestParseOfferText_NoPrice tests that rows without a price are dropped
func TestParseOfferText_NoPrice(t *testing.T) {
	_, ok := parseOfferText("Enterprise\nEconomy", "Miami", 2)

	assert.False(t, ok)
}

// TestParseOfferText_NoProvider tests that rows without a supplier name are dropped
func TestParseOfferText_NoProvider(t *testing.T) {
	_, ok := parseOfferText("$45/day", "Miami", 2)

	assert.False(t, ok)
}
