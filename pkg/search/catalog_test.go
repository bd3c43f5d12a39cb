package search

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogClient_Deterministic tests that identical queries produce identical offers
func TestCatalogClient_Deterministic(t *testing.T) {
	client := NewCatalogClient(zerolog.Nop())
	q := testQuery("", "Miami")

	first, err := client.Search(context.Background(), q)
	require.NoError(t, err)

	second, err := client.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestCatalogClient_SortedByDailyPrice tests the price-ascending contract
func TestCatalogClient_SortedByDailyPrice(t *testing.T) {
	client := NewCatalogClient(zerolog.Nop())

	offers, err := client.Search(context.Background(), testQuery("New York", "Los Angeles"))
	require.NoError(t, err)
	require.NotEmpty(t, offers)

	assert.True(t, sort.SliceIsSorted(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	}))
}

// TestCatalogClient_OfferShape tests that every offer is fully populated
func TestCatalogClient_OfferShape(t *testing.T) {
	client := NewCatalogClient(zerolog.Nop())
	q := testQuery("", "Denver")

	offers, err := client.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, offers, len(catalogCompanies))

	for _, offer := range offers {
		assert.NotEmpty(t, offer.Provider)
		assert.NotEmpty(t, offer.VehicleClass)
		assert.Greater(t, offer.Price, 0.0)
		assert.Equal(t, "USD", offer.Currency)
		assert.Equal(t, "Denver", offer.PickupLocation)
		assert.InDelta(t, offer.Price*4, offer.TotalPrice, 0.01)
		assert.GreaterOrEqual(t, offer.Rating, 3.5)
		assert.LessOrEqual(t, offer.Rating, 5.0)
		assert.NotEmpty(t, offer.Features)
	}
}

// TestCatalogClient_CrossCountryPricing tests that long one-way trips cost more
func TestCatalogClient_CrossCountryPricing(t *testing.T) {
	client := NewCatalogClient(zerolog.Nop())

	local, err := client.Search(context.Background(), testQuery("", "Miami"))
	require.NoError(t, err)

	crossCountry, err := client.Search(context.Background(), testQuery("New York", "Los Angeles"))
	require.NoError(t, err)

	avg := func(offers []Offer) float64 {
		total := 0.0
		for _, o := range offers {
			total += o.Price
		}
		return total / float64(len(offers))
	}

	assert.Greater(t, avg(crossCountry), avg(local))
}

// TestCatalogClient_CancelledContext tests the cancellation path
func TestCatalogClient_CancelledContext(t *testing.T) {
	client := NewCatalogClient(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, testQuery("", "Miami"))

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestEstimateDistanceMiles_CrossCountry tests the east/west heuristic
func TestEstimateDistanceMiles_CrossCountry(t *testing.T) {
	d := estimateDistanceMiles("Boston", "Seattle")
	assert.GreaterOrEqual(t, d, 2300)
	assert.LessOrEqual(t, d, 2700)

	d = estimateDistanceMiles("Dallas", "Houston")
	assert.GreaterOrEqual(t, d, 600)
	assert.LessOrEqual(t, d, 1000)
}
