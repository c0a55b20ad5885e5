// Package analysis implements the trust analysis pipeline for Vigil:
// classify a free-text request, bind it to a use-case workflow, execute the
// workflow's capability steps, and assemble the aggregated trust report.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/classifier"
	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/internal/scoring"
)

// Request is an analysis submission. UseCaseID optionally pins the workflow,
// bypassing use-case inference; Data carries structured values referenced by
// capability checks.
type Request struct {
	Text      string         `json:"text"`
	UseCaseID string         `json:"use_case_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Report is the assembled outcome of one analysis run.
type Report struct {
	ExecutionID     uuid.UUID                     `json:"execution_id"`
	Status          string                        `json:"status"`
	UseCaseID       string                        `json:"use_case_id"`
	Classification  classifier.Result             `json:"classification"`
	Context         binding.Context               `json:"context"`
	Scores          scoring.Scores                `json:"scores"`
	StepStatus      map[string]string             `json:"step_status"`
	Results         map[string]*capability.Result `json:"results"`
	CriticalIssues  []string                      `json:"critical_issues,omitempty"`
	Recommendations []string                      `json:"recommendations,omitempty"`
	Errors          []orchestrator.StepError      `json:"errors,omitempty"`
	Duration        time.Duration                 `json:"duration"`
	ReportKey       string                        `json:"report_key,omitempty"`
}

// UseCaseSummary is the catalog listing entry exposed over the API.
type UseCaseSummary struct {
	ID          string   `json:"id"`
	Vertical    string   `json:"vertical"`
	Name        string   `json:"name"`
	Steps       int      `json:"steps"`
	Regulations []string `json:"regulations,omitempty"`
}
