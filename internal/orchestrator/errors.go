// Package orchestrator executes a binding's workflow against the capability
// registry: baseline scans first, then dependency-gated dispatch of workflow
// steps with per-step timeouts and cooperative cancellation, folding step
// results into aggregated trust scores.
package orchestrator

import "errors"

// Sentinel errors for orchestration.
var (
	ErrExecutionCancelled = errors.New("execution cancelled")
	ErrExecutionNotFound  = errors.New("execution not found")
	ErrStepTimeout        = errors.New("step timed out")
	ErrBudgetExceeded     = errors.New("execution timeout budget exceeded")
)
