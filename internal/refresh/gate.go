// Package refresh owns the one-time store initialization and the
// periodic synthesize-and-persist cycle.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// State is the store initialization state.
type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Gate runs an init function at most once successfully per process.
type Gate struct {
	mu    sync.Mutex
	state State
	init  func(context.Context) error
}

// NewGate creates a gate around init.
func NewGate(init func(context.Context) error) *Gate {
	return &Gate{init: init}
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// EnsureReady runs init if nobody has yet. Callers arriving while another
// caller is initializing, or after it finished, return immediately with
// the state they observed. A failed init puts the gate back to
// Uninitialized so a later call retries.
func (g *Gate) EnsureReady(ctx context.Context) (State, error) {
	g.mu.Lock()
	if g.state != Uninitialized {
		s := g.state
		g.mu.Unlock()
		return s, nil
	}
	g.state = Initializing
	g.mu.Unlock()

	err := g.init(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = Uninitialized
		slog.Error("store initialization failed", "error", err)
		return g.state, fmt.Errorf("initializing store: %w", err)
	}
	g.state = Ready
	slog.Info("store ready")
	return g.state, nil
}
