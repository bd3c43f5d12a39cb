package orchestrator

import (
	"fmt"
	"sync"

	"github.com/harun/roadscout/pkg/agent"
)

// TaskState tracks a node through the run graph. A node fails at the
// graph level only when its agent panics; an agent returning a failed
// Result still completes its node.
type TaskState string

const (
	TaskPending TaskState = "pending"
	TaskRunning TaskState = "running"
	TaskDone    TaskState = "done"
	TaskFailed  TaskState = "failed"
)

// IsTerminal returns true if the state is terminal
func (s TaskState) IsTerminal() bool {
	return s == TaskDone || s == TaskFailed
}

// runGraph is the fixed dependency graph of one rental run: cars and
// route have no dependencies, summary depends on both. Readiness is
// terminality of dependencies, not success, so summary still runs when
// an upstream node failed.
type runGraph struct {
	mu     sync.Mutex
	states map[agent.Name]TaskState
	deps   map[agent.Name][]agent.Name
}

func newRunGraph() *runGraph {
	return &runGraph{
		states: map[agent.Name]TaskState{
			agent.NameCars:    TaskPending,
			agent.NameRoute:   TaskPending,
			agent.NameSummary: TaskPending,
		},
		deps: map[agent.Name][]agent.Name{
			agent.NameSummary: {agent.NameCars, agent.NameRoute},
		},
	}
}

// transition moves a node from an expected prior state, making races
// observable as errors.
func (g *runGraph) transition(name agent.Name, from, to TaskState) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur, ok := g.states[name]
	if !ok {
		return fmt.Errorf("unknown task: %q", name)
	}
	if cur != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", name, from, cur)
	}
	if !allowedTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", name, from, to)
	}
	g.states[name] = to
	return nil
}

func allowedTransition(from, to TaskState) bool {
	switch from {
	case TaskPending:
		return to == TaskRunning
	case TaskRunning:
		return to == TaskDone || to == TaskFailed
	default:
		return false
	}
}

// ready reports whether the node is pending with all dependencies in a
// terminal state.
func (g *runGraph) ready(name agent.Name) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.states[name] != TaskPending {
		return false
	}
	for _, dep := range g.deps[name] {
		if !g.states[dep].IsTerminal() {
			return false
		}
	}
	return true
}

func (g *runGraph) state(name agent.Name) TaskState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.states[name]
}
