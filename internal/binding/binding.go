// Package binding resolves a classification against the use-case catalog and
// produces a Binding: the customized workflow plus analysis context for one
// request. Bindings are immutable once created; customization happens once,
// on a fresh copy of the catalog's base workflow.
package binding

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
	"github.com/JaimeStill/vigil/internal/scoring"
)

// Context carries the resolved analysis context handed to every capability.
type Context struct {
	Vertical    string                       `json:"vertical"`
	UseCase     string                       `json:"use_case"`
	Regulations []string                     `json:"regulations,omitempty"`
	Thresholds  map[string]catalog.Threshold `json:"thresholds,omitempty"`
}

// Binding is the resolved, customized workflow for a specific request.
type Binding struct {
	ID             uuid.UUID         `json:"id"`
	UseCaseID      string            `json:"use_case_id"`
	Classification classifier.Result `json:"classification"`
	Workflow       catalog.Workflow  `json:"workflow"`
	Context        Context           `json:"context"`
	BaseScores     scoring.Scores    `json:"base_scores"`
	TimeoutBudget  time.Duration     `json:"timeout_budget"`
}
