// Package audit implements the execution audit trail for Vigil. It persists
// per-execution summaries and per-step outcome records, and exposes the query
// surface for reviewing past analysis runs.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/orchestrator"
)

// Execution is the stored summary of one workflow execution.
// It mirrors the executions table schema with step statuses and errors
// flattened into JSON columns.
type Execution struct {
	ID             uuid.UUID                `json:"id"`
	UseCaseID      string                   `json:"use_case_id"`
	Vertical       string                   `json:"vertical"`
	Status         string                   `json:"status"`
	SecurityScore  int                      `json:"security_score"`
	IntegrityScore int                      `json:"integrity_score"`
	AccuracyScore  int                      `json:"accuracy_score"`
	DurationMS     int64                    `json:"duration_ms"`
	StepStatuses   map[string]string        `json:"step_statuses"`
	Errors         []orchestrator.StepError `json:"errors"`
	RequestText    string                   `json:"request_text"`
	CreatedAt      time.Time                `json:"created_at"`
}

// Step is one stored step outcome within an execution.
type Step struct {
	ID           int64     `json:"id"`
	ExecutionID  uuid.UUID `json:"execution_id"`
	StepID       string    `json:"step_id"`
	CapabilityID string    `json:"capability_id"`
	Status       string    `json:"status"`
	Error        *string   `json:"error,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	RecordedAt   time.Time `json:"recorded_at"`
}
