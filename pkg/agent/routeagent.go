package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/llm"
	"github.com/harun/roadscout/pkg/query"
	"github.com/harun/roadscout/pkg/route"
)

// RouteAgent plans the rental journey and narrates it. For round-trip
// rentals the route capability returns local insights only.
type RouteAgent struct {
	route  route.Client
	gen    Generator
	genCfg llm.GenerationConfig
	logger zerolog.Logger
}

// NewRouteAgent creates a new route agent
func NewRouteAgent(routeClient route.Client, gen Generator, genCfg llm.GenerationConfig, logger zerolog.Logger) *RouteAgent {
	return &RouteAgent{
		route:  routeClient,
		gen:    gen,
		genCfg: genCfg,
		logger: logger.With().Str("agent", string(NameRoute)).Logger(),
	}
}

// Run plans the route for the query and narrates it. Route capability
// failures and generation exhaustion yield Failed results.
func (a *RouteAgent) Run(ctx context.Context, q query.Query) Result {
	started := time.Now()
	logger := tracing.LoggerFromContext(ctx, a.logger)

	origin := q.Origin
	if q.RoundTrip() {
		origin = ""
	}

	info, err := a.route.Route(ctx, origin, q.Location, q.StartDate, q.EndDate)
	if err != nil {
		logger.Error().Err(err).Msg("Route planning failed")
		return failedResult(NameRoute, fmt.Errorf("plan route: %w", err), started)
	}

	if info.Local() && len(info.Notes) == 0 {
		logger.Warn().Str("location", q.Location).Msg("No route data available")
		return Result{
			Agent:    NameRoute,
			Status:   StatusDegraded,
			Content:  fmt.Sprintf("No route information is available for %s. Plan the journey with a local map service.", q.Location),
			Duration: time.Since(started),
		}
	}

	content, err := a.gen.Generate(ctx, routePrompt(q, info), a.genCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Route narrative generation failed")
		return failedResult(NameRoute, fmt.Errorf("generate narrative: %w", err), started)
	}

	logger.Info().
		Bool("local", info.Local()).
		Int("distance_miles", info.DistanceMiles).
		Msg("Route analysis complete")

	return Result{
		Agent:    NameRoute,
		Status:   StatusOk,
		Content:  content,
		RawData:  info,
		Duration: time.Since(started),
	}
}
