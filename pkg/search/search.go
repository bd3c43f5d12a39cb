// Package search provides the rental-offer search capability: a Kayak
// URL builder, a headless-browser scraping client, and a deterministic
// offline catalog used when no browser endpoint is configured.
package search

import (
	"context"
	"fmt"

	"github.com/harun/roadscout/pkg/query"
)

// Offer is a single rental option. Offers are read-only to agents.
type Offer struct {
	Provider       string   `json:"provider"`
	VehicleClass   string   `json:"vehicle_class"`
	Price          float64  `json:"price"` // daily rate
	Currency       string   `json:"currency"`
	PickupLocation string   `json:"pickup_location"`
	TotalPrice     float64  `json:"total_price"`
	Rating         float64  `json:"rating,omitempty"`
	SpecialOffer   string   `json:"special_offer,omitempty"`
	Features       []string `json:"features,omitempty"`
}

// Client searches rental offers for a structured query. A nil error
// with zero offers means the search ran but found nothing.
type Client interface {
	Search(ctx context.Context, q query.Query) ([]Offer, error)
}

// UnavailableError reports a transport or auth failure of the search
// capability. It never propagates past the agent that owns the search.
type UnavailableError struct {
	Err error
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("search unavailable: %v", e.Err)
}

// Unwrap returns the underlying failure
func (e *UnavailableError) Unwrap() error {
	return e.Err
}
