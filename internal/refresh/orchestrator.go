package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evcraddock/immo-abidjan/internal/listing"
	"github.com/evcraddock/immo-abidjan/internal/synth"
)

// Store is where refreshed listings are written.
type Store interface {
	Upsert(ctx context.Context, l listing.Listing) (bool, error)
}

// Result counts one refresh cycle.
type Result struct {
	Produced int `json:"produced"`
	Saved    int `json:"saved"`
}

// Schedule controls the periodic loop.
type Schedule struct {
	InitialDelay time.Duration
	Interval     time.Duration
	Backoff      time.Duration
}

// DefaultSchedule refreshes twice a day and retries an hour after a failure.
var DefaultSchedule = Schedule{
	Interval: 12 * time.Hour,
	Backoff:  time.Hour,
}

// Orchestrator runs refresh cycles.
type Orchestrator struct {
	gate     *Gate
	strategy synth.Strategy
	store    Store
	schedule Schedule
}

// New creates an Orchestrator. Zero schedule fields take DefaultSchedule values.
func New(gate *Gate, strategy synth.Strategy, store Store, schedule Schedule) *Orchestrator {
	if schedule.Interval <= 0 {
		schedule.Interval = DefaultSchedule.Interval
	}
	if schedule.Backoff <= 0 {
		schedule.Backoff = DefaultSchedule.Backoff
	}
	return &Orchestrator{gate: gate, strategy: strategy, store: store, schedule: schedule}
}

// RunOnce performs one cycle: make sure the store is ready, generate a
// batch, and upsert every listing. Per-listing write errors are logged
// and counted as not saved.
func (o *Orchestrator) RunOnce(ctx context.Context) (Result, error) {
	state, err := o.gate.EnsureReady(ctx)
	if err != nil {
		return Result{}, err
	}
	if state != Ready {
		return Result{}, fmt.Errorf("store is %s", state)
	}

	batch, err := o.strategy.Generate(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("generating listings: %w", err)
	}

	res := Result{Produced: len(batch)}
	for _, l := range batch {
		saved, err := o.store.Upsert(ctx, l)
		if err != nil {
			slog.Warn("saving listing", "id", l.ID, "url", l.URL, "error", err)
			continue
		}
		if saved {
			res.Saved++
		}
	}

	slog.Info("refresh cycle complete", "strategy", o.strategy.Name(), "produced", res.Produced, "saved", res.Saved)
	return res, nil
}

// Run waits InitialDelay, then runs cycles until ctx is cancelled. After
// a successful cycle it sleeps Interval; after a failed one, Backoff.
func (o *Orchestrator) Run(ctx context.Context) {
	slog.Info("refresh loop started",
		"initial_delay", o.schedule.InitialDelay.String(),
		"interval", o.schedule.Interval.String(),
		"backoff", o.schedule.Backoff.String(),
	)

	wait := o.schedule.InitialDelay
	for {
		if !sleep(ctx, wait) {
			slog.Info("refresh loop stopped")
			return
		}

		if _, err := o.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Info("refresh loop stopped")
				return
			}
			slog.Error("refresh cycle failed", "error", err, "retry_in", o.schedule.Backoff.String())
			wait = o.schedule.Backoff
			continue
		}
		wait = o.schedule.Interval
	}
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
