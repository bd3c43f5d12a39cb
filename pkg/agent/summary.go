package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/llm"
	"github.com/harun/roadscout/pkg/query"
)

// SummaryPolicy controls how upstream problems color the summary.
type SummaryPolicy struct {
	// DegradeOnUpstream downgrades an otherwise successful summary to
	// StatusDegraded when any upstream section is missing or degraded.
	DegradeOnUpstream bool
}

// DefaultSummaryPolicy degrades the summary whenever an upstream
// section is incomplete, so callers can tell a full report from a
// partial one.
func DefaultSummaryPolicy() SummaryPolicy {
	return SummaryPolicy{DegradeOnUpstream: true}
}

// SummaryAgent combines the cars and route sections into the final
// recommendation.
type SummaryAgent struct {
	gen    Generator
	genCfg llm.GenerationConfig
	policy SummaryPolicy
	logger zerolog.Logger
}

// NewSummaryAgent creates a new summary agent
func NewSummaryAgent(gen Generator, genCfg llm.GenerationConfig, policy SummaryPolicy, logger zerolog.Logger) *SummaryAgent {
	return &SummaryAgent{
		gen:    gen,
		genCfg: genCfg,
		policy: policy,
		logger: logger.With().Str("agent", string(NameSummary)).Logger(),
	}
}

// Run summarizes the upstream results. When both upstream sections
// failed there is nothing to summarize: the summary fails immediately
// and no generation call is made.
func (a *SummaryAgent) Run(ctx context.Context, q query.Query, cars, routeRes Result) Result {
	started := time.Now()
	logger := tracing.LoggerFromContext(ctx, a.logger)

	if cars.Failed() && routeRes.Failed() {
		logger.Warn().Msg("Both upstream sections failed, skipping summary")
		return failedResult(NameSummary, errors.New("no upstream content to summarize"), started)
	}

	content, err := a.gen.Generate(ctx, summaryPrompt(q, cars, routeRes), a.genCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Summary generation failed")
		return failedResult(NameSummary, fmt.Errorf("generate summary: %w", err), started)
	}

	status := StatusOk
	if a.policy.DegradeOnUpstream && (cars.Status != StatusOk || routeRes.Status != StatusOk) {
		status = StatusDegraded
	}

	logger.Info().Str("status", string(status)).Msg("Summary complete")

	return Result{
		Agent:    NameSummary,
		Status:   status,
		Content:  content,
		Duration: time.Since(started),
	}
}
