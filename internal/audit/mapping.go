package audit

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/vigil/pkg/query"
	"github.com/JaimeStill/vigil/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "executions", "e").
	Project("id", "ID").
	Project("use_case_id", "UseCaseID").
	Project("vertical", "Vertical").
	Project("status", "Status").
	Project("security_score", "SecurityScore").
	Project("integrity_score", "IntegrityScore").
	Project("accuracy_score", "AccuracyScore").
	Project("duration_ms", "DurationMS").
	Project("step_statuses", "StepStatuses").
	Project("errors", "Errors").
	Project("request_text", "RequestText").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for execution queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	UseCaseID *string `json:"use_case_id,omitempty"`
	Vertical  *string `json:"vertical,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UseCaseID", f.UseCaseID).
		WhereEquals("Vertical", f.Vertical).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("use_case_id"); u != "" {
		f.UseCaseID = &u
	}

	if v := values.Get("vertical"); v != "" {
		f.Vertical = &v
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanExecution(s repository.Scanner) (Execution, error) {
	var e Execution
	var statusesRaw, errorsRaw []byte

	err := s.Scan(
		&e.ID,
		&e.UseCaseID,
		&e.Vertical,
		&e.Status,
		&e.SecurityScore,
		&e.IntegrityScore,
		&e.AccuracyScore,
		&e.DurationMS,
		&statusesRaw,
		&errorsRaw,
		&e.RequestText,
		&e.CreatedAt,
	)

	if err != nil {
		return e, err
	}

	if len(statusesRaw) > 0 {
		if err := json.Unmarshal(statusesRaw, &e.StepStatuses); err != nil {
			return e, fmt.Errorf("unmarshal step_statuses: %w", err)
		}
	}

	if len(errorsRaw) > 0 {
		if err := json.Unmarshal(errorsRaw, &e.Errors); err != nil {
			return e, fmt.Errorf("unmarshal errors: %w", err)
		}
	}

	if e.StepStatuses == nil {
		e.StepStatuses = map[string]string{}
	}

	return e, nil
}

func scanStep(s repository.Scanner) (Step, error) {
	var st Step

	err := s.Scan(
		&st.ID,
		&st.ExecutionID,
		&st.StepID,
		&st.CapabilityID,
		&st.Status,
		&st.Error,
		&st.DurationMS,
		&st.RecordedAt,
	)

	return st, err
}
