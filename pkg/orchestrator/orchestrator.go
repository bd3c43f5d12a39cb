// Package orchestrator coordinates the rental run: it parses the
// request, fans the cars and route agents out in parallel, gates the
// summary agent on their completion and assembles the final Report.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/agent"
	"github.com/harun/roadscout/pkg/query"
)

// Orchestrator runs rental requests through the fixed agent graph.
type Orchestrator struct {
	cars     CapabilityAgent
	route    CapabilityAgent
	summary  Summarizer
	timeouts Timeouts
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(cars, route CapabilityAgent, summary Summarizer, timeouts Timeouts, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cars:     cars,
		route:    route,
		summary:  summary,
		timeouts: timeouts,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessRentalRequest runs one rental request end to end and returns
// the Report. Only two errors escape: *query.ParseError, returned
// before any capability is touched, and context cancellation. Agent
// failures stay inside the Report.
func (o *Orchestrator) ProcessRentalRequest(ctx context.Context, raw string) (Report, error) {
	q, err := query.Parse(raw, o.now())
	if err != nil {
		return Report{}, err
	}

	ctx = tracing.NewRequestContext(ctx)
	logger := tracing.LoggerFromContext(ctx, o.logger)

	logger.Info().
		Str("location", q.Location).
		Bool("round_trip", q.RoundTrip()).
		Msg("Processing rental request")

	graph := newRunGraph()
	started := o.now()

	var (
		carsRes  agent.Result
		routeRes agent.Result
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		carsRes = o.runNode(ctx, graph, agent.NameCars, o.timeouts.Search, func(runCtx context.Context) agent.Result {
			return o.cars.Run(runCtx, q)
		})
	}()
	go func() {
		defer wg.Done()
		routeRes = o.runNode(ctx, graph, agent.NameRoute, o.timeouts.Route, func(runCtx context.Context) agent.Result {
			return o.route.Run(runCtx, q)
		})
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	var summaryRes agent.Result
	if graph.ready(agent.NameSummary) {
		summaryRes = o.runNode(ctx, graph, agent.NameSummary, o.timeouts.Generate, func(runCtx context.Context) agent.Result {
			return o.summary.Run(runCtx, q, carsRes, routeRes)
		})
	} else {
		// Unreachable with the fixed graph; kept so a broken gate is
		// visible in the report instead of a hang.
		summaryRes = panicResult(agent.NameSummary, "summary gate not ready", 0)
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{
		ID:          tracing.NewRunID(),
		Query:       q,
		Cars:        carsRes,
		Route:       routeRes,
		Summary:     summaryRes,
		GeneratedAt: o.now(),
	}

	logger.Info().
		Str("report_id", report.ID).
		Str("cars", string(carsRes.Status)).
		Str("route", string(routeRes.Status)).
		Str("summary", string(summaryRes.Status)).
		Dur("duration", o.now().Sub(started)).
		Msg("Rental request complete")

	return report, nil
}

// runNode executes one graph node with its timeout, recovering panics.
// A panic marks the node graph-failed and synthesizes a failed Result
// so the Report stays total.
func (o *Orchestrator) runNode(ctx context.Context, graph *runGraph, name agent.Name, timeout time.Duration, fn func(context.Context) agent.Result) (result agent.Result) {
	logger := tracing.LoggerFromContext(ctx, o.logger)
	started := time.Now()

	if err := graph.transition(name, TaskPending, TaskRunning); err != nil {
		logger.Error().Err(err).Str("task", string(name)).Msg("Task transition rejected")
		return panicResult(name, err.Error(), time.Since(started))
	}

	runCtx := tracing.WithAgent(ctx, string(name))
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("task", string(name)).
				Msg("Agent panicked, failing task")
			if err := graph.transition(name, TaskRunning, TaskFailed); err != nil {
				logger.Error().Err(err).Str("task", string(name)).Msg("Task transition rejected")
			}
			result = panicResult(name, fmt.Sprintf("agent panic: %v", r), time.Since(started))
		}
	}()

	result = fn(runCtx)

	if err := graph.transition(name, TaskRunning, TaskDone); err != nil {
		logger.Error().Err(err).Str("task", string(name)).Msg("Task transition rejected")
	}
	return result
}

func panicResult(name agent.Name, msg string, duration time.Duration) agent.Result {
	return agent.Result{
		Agent:    name,
		Status:   agent.StatusFailed,
		Err:      msg,
		Duration: duration,
	}
}
