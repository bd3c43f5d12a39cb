package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/llm"
	"github.com/harun/roadscout/pkg/query"
	"github.com/harun/roadscout/pkg/search"
)

// CarsAgent searches rental offers and produces a ranked analysis.
type CarsAgent struct {
	search search.Client
	gen    Generator
	genCfg llm.GenerationConfig
	logger zerolog.Logger
}

// NewCarsAgent creates a new cars agent
func NewCarsAgent(searchClient search.Client, gen Generator, genCfg llm.GenerationConfig, logger zerolog.Logger) *CarsAgent {
	return &CarsAgent{
		search: searchClient,
		gen:    gen,
		genCfg: genCfg,
		logger: logger.With().Str("agent", string(NameCars)).Logger(),
	}
}

// Run searches offers for the query and narrates the top options.
// A search failure or generation exhaustion yields a Failed result;
// an empty result set yields a Degraded result without a generation
// call. Errors never escape except context cancellation.
func (a *CarsAgent) Run(ctx context.Context, q query.Query) Result {
	started := time.Now()
	logger := tracing.LoggerFromContext(ctx, a.logger)

	offers, err := a.search.Search(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Offer search failed")
		return failedResult(NameCars, fmt.Errorf("search offers: %w", err), started)
	}

	if len(offers) == 0 {
		logger.Warn().Str("location", q.Location).Msg("No offers found")
		return Result{
			Agent:    NameCars,
			Status:   StatusDegraded,
			Content:  fmt.Sprintf("No rental offers were found for %s in the requested period. Try different dates or a nearby pickup location.", q.Location),
			Duration: time.Since(started),
		}
	}

	content, err := a.gen.Generate(ctx, carsPrompt(q, offers), a.genCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Offer analysis generation failed")
		return failedResult(NameCars, fmt.Errorf("generate analysis: %w", err), started)
	}

	logger.Info().Int("offers", len(offers)).Msg("Offer analysis complete")

	return Result{
		Agent:    NameCars,
		Status:   StatusOk,
		Content:  content,
		RawData:  offers,
		Duration: time.Since(started),
	}
}
