package orchestrator

import (
	"context"
	"time"

	"github.com/harun/roadscout/pkg/agent"
	"github.com/harun/roadscout/pkg/query"
)

// Report is the complete outcome of one rental run. Every section is
// always present; degraded or failed agents surface through their
// Result status, never as missing sections.
type Report struct {
	ID          string       `json:"id"`
	Query       query.Query  `json:"query"`
	Cars        agent.Result `json:"cars"`
	Route       agent.Result `json:"route"`
	Summary     agent.Result `json:"summary"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// CapabilityAgent runs one capability-backed agent for a query.
type CapabilityAgent interface {
	Run(ctx context.Context, q query.Query) agent.Result
}

// Summarizer folds the upstream sections into the final recommendation.
type Summarizer interface {
	Run(ctx context.Context, q query.Query, cars, route agent.Result) agent.Result
}

// Timeouts bounds each capability call. Zero values mean no bound
// beyond the request context.
type Timeouts struct {
	Search   time.Duration
	Route    time.Duration
	Generate time.Duration
}
