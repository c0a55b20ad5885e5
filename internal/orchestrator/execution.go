package orchestrator

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/scoring"
)

// Per-step terminal and transient statuses.
const (
	StepPending  = "pending"
	StepRunning  = "running"
	StepDone     = "done"
	StepFailed   = "failed"
	StepTimedOut = "timed-out"
	StepSkipped  = "skipped"
)

// Overall execution statuses.
const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// StepError records one step failure in the result's error list.
type StepError struct {
	StepID    string    `json:"step_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Result is the outcome of one workflow execution. stepOrder preserves step
// declaration order so derived views of the Results map stay deterministic
// across identical runs.
type Result struct {
	ExecutionID uuid.UUID                     `json:"execution_id"`
	UseCaseID   string                        `json:"use_case_id"`
	Status      string                        `json:"status"`
	Results     map[string]*capability.Result `json:"results"`
	StepStatus  map[string]string             `json:"step_status"`
	Scores      scoring.Scores                `json:"scores"`
	Duration    time.Duration                 `json:"duration"`
	Errors      []StepError                   `json:"errors,omitempty"`

	stepOrder []string
}

func (r *Result) orderedResults() []*capability.Result {
	ids := r.stepOrder
	if len(ids) == 0 {
		ids = slices.Sorted(maps.Keys(r.Results))
	}

	results := make([]*capability.Result, 0, len(r.Results))
	for _, id := range ids {
		if res, ok := r.Results[id]; ok && res != nil {
			results = append(results, res)
		}
	}
	return results
}

// CriticalIssues collects the messages of all critical flags across step
// results, in step declaration order.
func (r *Result) CriticalIssues() []string {
	var issues []string
	for _, res := range r.orderedResults() {
		for _, f := range res.Flags {
			if f.Severity == capability.SeverityCritical {
				issues = append(issues, f.Message)
			}
		}
	}
	return issues
}

// Recommendations collects all step recommendations in step declaration order.
func (r *Result) Recommendations() []string {
	var recs []string
	for _, res := range r.orderedResults() {
		recs = append(recs, res.Recommendations...)
	}
	return recs
}

// StepEvent is the audit record for one step outcome.
type StepEvent struct {
	ExecutionID  uuid.UUID     `json:"execution_id"`
	StepID       string        `json:"step_id"`
	CapabilityID string        `json:"capability_id"`
	Status       string        `json:"status"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	Timestamp    time.Time     `json:"timestamp"`
}

// step is the orchestrator's scheduling view of a workflow step. Baseline
// steps are synthesized ahead of the binding's own steps.
type step struct {
	id           string
	name         string
	capabilityID string
	dependsOn    []string
	optional     bool
	timeout      time.Duration
	config       map[string]any
}

// outcome is the terminal state of one step.
type outcome struct {
	status   string
	result   *capability.Result
	err      error
	duration time.Duration
}

func (o outcome) terminal() bool {
	switch o.status {
	case StepDone, StepFailed, StepTimedOut, StepSkipped:
		return true
	}
	return false
}
