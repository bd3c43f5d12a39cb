// Package agent implements the specialist agents of a rental run:
// cars (offer search and analysis), route (journey planning) and
// summary (final recommendation). Each agent owns one capability and
// reports a terminal Result; failures never propagate as errors past
// the agent that owns the capability.
package agent

import (
	"context"
	"time"

	"github.com/harun/roadscout/pkg/llm"
)

// Name identifies a specialist agent.
type Name string

const (
	NameCars    Name = "cars"
	NameRoute   Name = "route"
	NameSummary Name = "summary"
)

// Status is the terminal outcome of a single agent run
type Status string

const (
	// StatusOk means the agent produced its full narrative.
	StatusOk Status = "ok"
	// StatusDegraded means the agent produced a useful but reduced
	// answer, e.g. no offers found or upstream sections missing.
	StatusDegraded Status = "degraded"
	// StatusFailed means the agent could not produce an answer.
	StatusFailed Status = "failed"
)

// Result is the outcome of one agent run. Every run yields exactly one
// Result regardless of capability or generation failures.
type Result struct {
	Agent    Name          `json:"agent"`
	Status   Status        `json:"status"`
	Content  string        `json:"content,omitempty"`
	Err      string        `json:"error,omitempty"`
	RawData  interface{}   `json:"raw_data,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Failed reports whether the run produced no usable content.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Generator produces narrative text from a prompt. *llm.Gateway
// satisfies this interface.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error)
}

func failedResult(name Name, err error, started time.Time) Result {
	return Result{
		Agent:    name,
		Status:   StatusFailed,
		Err:      err.Error(),
		Duration: time.Since(started),
	}
}
