package bootstrap

import (
	"context"
	"time"
)

// ReadinessGate blocks until the script-runner tooling is usable (or
// gives up) and reports the granted readiness.
type ReadinessGate interface {
	Await(osID string) bool
}

// Pipeline runs the customization script once and classifies the result.
type Pipeline interface {
	Run(ctx context.Context) Outcome
}

// CleanupStage scrubs transient state, best effort.
type CleanupStage interface {
	Clean()
}

// ShutdownScheduler is the terminal stage.
type ShutdownScheduler interface {
	DrainAndShutdown(drain time.Duration)
}

// Orchestrator wires the bootstrap state machine:
//
//	START → AWAIT_READY → {RUN_SCRIPT → CLEANUP | SKIP} → DRAIN → SHUTDOWN
//
// Readiness is the only branch point; both branches reconverge on the
// shutdown scheduler, which is reached on every path.
type Orchestrator struct {
	OSID  string
	Drain time.Duration

	Gate     ReadinessGate
	Pipeline Pipeline
	Cleanup  CleanupStage
	Shutdown ShutdownScheduler

	Logf func(string, ...any)
}

// Run executes the state machine to completion. It returns only for
// the benefit of tests; in production the shutdown scheduler powers
// the machine off.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	outcome := OutcomeSkipped

	if o.Gate.Await(o.OSID) {
		outcome = o.Pipeline.Run(ctx)
		o.Cleanup.Clean()
	}

	logf(o.Logf, "bootstrap %s", outcome)
	o.Shutdown.DrainAndShutdown(o.Drain)
	return outcome
}
