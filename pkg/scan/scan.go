// Package scan orchestrates the scanner adapters and assembles their
// outcomes into a single Run.
//
// Adapters have no ordering dependency on each other and each writes
// to its own artifact path, so they execute as independent concurrent
// tasks. A join barrier guarantees every outcome exists before the
// run is frozen; the gating flag is reduced single-writer after the
// join, never accumulated from worker goroutines.
package scan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/tools"
	"github.com/relgate/relgate/pkg/workerpool"
)

// Run is the complete set of outcomes from one pipeline invocation.
// Nothing is persisted across runs except the rendered report file.
type Run struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"started_at"`
	Outcomes  []tools.Outcome `json:"outcomes"`

	// AnyIssue is the sole gating signal: true when at least one
	// outcome has findings. Tooling errors and skips never set it; a
	// tool that failed to run is not itself a security finding.
	AnyIssue bool `json:"any_issue"`
}

// Orchestrator runs a fixed, ordered adapter list.
type Orchestrator struct {
	adapters []tools.Adapter
	inv      *tools.Invoker
	workers  int

	// Observe, when set, receives each outcome as it completes. Used
	// for per-tool phase logging; may be called from worker
	// goroutines and must be safe for concurrent use.
	Observe func(tools.Outcome)
}

// New creates an orchestrator over the given adapters. workers bounds
// adapter concurrency; 0 means one worker per adapter.
func New(inv *tools.Invoker, adapters []tools.Adapter, workers int) *Orchestrator {
	if workers <= 0 || workers > len(adapters) {
		workers = len(adapters)
	}
	return &Orchestrator{
		adapters: adapters,
		inv:      inv,
		workers:  workers,
	}
}

// Run executes every adapter and returns the frozen Run. It never
// returns an error: adapter failures are outcome state by contract.
// Outcomes keep adapter order regardless of completion order, so the
// report layout is deterministic.
func (o *Orchestrator) Run(ctx context.Context) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Outcomes:  make([]tools.Outcome, len(o.adapters)),
	}

	pool := workerpool.New(o.workers)
	defer pool.Close()

	pool.ParallelFor(len(o.adapters), func(i int) {
		out := o.adapters[i].Run(ctx, o.inv)
		run.Outcomes[i] = out
		if o.Observe != nil {
			o.Observe(out)
		}
	})

	// Single-writer reduction after the join barrier.
	for _, out := range run.Outcomes {
		if len(out.Findings) > 0 {
			run.AnyIssue = true
			break
		}
	}
	return run
}

// Counts aggregates typed severity counts across every outcome in r.
// This is the source-of-truth signal; the report summarizer derives a
// second, legacy-compatible count from the rendered text.
func (r *Run) Counts() map[finding.Severity]int {
	counts := make(map[finding.Severity]int)
	for _, out := range r.Outcomes {
		for _, f := range out.Findings {
			counts[f.Severity]++
		}
	}
	return counts
}

// TotalFindings returns the number of findings across all outcomes.
func (r *Run) TotalFindings() int {
	n := 0
	for _, out := range r.Outcomes {
		n += len(out.Findings)
	}
	return n
}
