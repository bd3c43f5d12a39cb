// Package llm provides a uniform gateway over ordered text-generation
// backends with per-provider fallback.
package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
)

// Gateway routes generation requests across an ordered provider list.
// Each provider gets exactly one attempt per call; the first success
// wins. The gateway itself holds no mutable state and is safe for
// concurrent use.
type Gateway struct {
	providers []Provider
	logger    zerolog.Logger
}

// NewGateway creates a new gateway. The provider order is the fallback
// order and must be non-empty.
func NewGateway(providers []Provider, logger zerolog.Logger) (*Gateway, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	return &Gateway{
		providers: providers,
		logger:    logger,
	}, nil
}

// Providers returns the configured fallback order.
func (g *Gateway) Providers() []ProviderID {
	order := make([]ProviderID, 0, len(g.providers))
	for _, p := range g.providers {
		order = append(order, p.Name())
	}
	return order
}

// Generate attempts providers in order and returns the first successful
// completion. Every failure is normalized to a ProviderError; when all
// providers fail the aggregate is returned as *UnavailableError.
// Retries within a single provider are the caller's responsibility.
func (g *Gateway) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	logger := tracing.LoggerFromContext(ctx, g.logger)

	attempts := make([]*ProviderError, 0, len(g.providers))
	for _, provider := range g.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		content, err := provider.Complete(ctx, prompt, cfg)
		if err == nil {
			logger.Debug().
				Str("provider", string(provider.Name())).
				Int("attempts", len(attempts)+1).
				Msg("Generation succeeded")
			return content, nil
		}

		perr := &ProviderError{Provider: provider.Name(), Err: err}
		attempts = append(attempts, perr)
		logger.Warn().
			Err(err).
			Str("provider", string(provider.Name())).
			Msg("Provider failed, advancing to next")
	}

	return "", &UnavailableError{Attempts: attempts}
}
