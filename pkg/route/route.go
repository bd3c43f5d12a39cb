// Package route provides the route-planning capability: geocoding,
// distance and drive-time estimation, and journey tips.
package route

import (
	"context"
	"fmt"
	"time"
)

// Info describes a planned route between two places.
type Info struct {
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	DistanceMiles int           `json:"distance_miles"`
	DriveTime     time.Duration `json:"drive_time"`
	MainRoute     string        `json:"main_route,omitempty"`
	// Notes are journey tips in priority order.
	Notes []string `json:"notes"`
}

// Local reports whether this is a single-city rental with no driving
// route (distance estimation skipped, local insights only).
func (i Info) Local() bool {
	return i.DistanceMiles == 0
}

// Client plans a route for a rental journey. Start and end bound the
// rental period and inform the tips.
type Client interface {
	Route(ctx context.Context, origin, destination string, start, end time.Time) (Info, error)
}

// UnavailableError reports a failure of the route capability. It never
// propagates past the agent that owns route planning.
type UnavailableError struct {
	Err error
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("route unavailable: %v", e.Err)
}

// Unwrap returns the underlying failure
func (e *UnavailableError) Unwrap() error {
	return e.Err
}
