// Package capability implements the analysis capability registry and the
// built-in heuristic capabilities that workflows schedule against.
// A capability is a named, independently invokable analysis unit with an
// enable/disable flag; workflows reference capabilities by id.
package capability

import "context"

// Dimension names used by capability results and flags to target a trust score.
const (
	DimensionSecurity  = "security"
	DimensionIntegrity = "integrity"
	DimensionAccuracy  = "accuracy"
)

// Flag severities, ordered by weight. Critical flags carry a score penalty
// during aggregation.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Baseline capability ids. Every execution runs these first, in this order,
// regardless of the workflow's own step graph.
const (
	CapSecurityScan  = "security-scan"
	CapIntegrityScan = "integrity-audit"
	CapAccuracyCheck = "accuracy-check"
)

// Baseline returns the baseline capability ids in their mandatory run order.
func Baseline() []string {
	return []string{CapSecurityScan, CapIntegrityScan, CapAccuracyCheck}
}

// IsBaseline reports whether id names one of the baseline capabilities.
func IsBaseline(id string) bool {
	return id == CapSecurityScan || id == CapIntegrityScan || id == CapAccuracyCheck
}

// Payload carries the request context a capability analyzes.
type Payload struct {
	Text        string         `json:"text"`
	Vertical    string         `json:"vertical"`
	UseCase     string         `json:"use_case"`
	Regulations []string       `json:"regulations,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// Flag marks a finding surfaced by a capability. Category names the trust
// dimension the flag counts against.
type Flag struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Result is the outcome of a single capability invocation. Type names the
// trust dimension Score blends into; nil Score or Confidence fields are
// treated as absent during aggregation.
type Result struct {
	Type            string         `json:"type,omitempty"`
	Score           *float64       `json:"score,omitempty"`
	Confidence      *float64       `json:"confidence,omitempty"`
	Flags           []Flag         `json:"flags,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
}

// Critical reports whether the result carries any critical-severity flag.
func (r *Result) Critical() bool {
	for _, f := range r.Flags {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Capability is a named analysis unit. Invoke must honor ctx cancellation
// where practical; the orchestrator still races invocations against its own
// timers, so a non-cooperative capability delays only its own goroutine.
type Capability interface {
	ID() string
	Enabled() bool
	Invoke(ctx context.Context, payload Payload) (*Result, error)
}

func score(v float64) *float64 {
	return &v
}

func confidence(v float64) *float64 {
	return &v
}
