package capability

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Vertical-specific capabilities referenced by the workflow catalog. Unlike
// the baseline set these are scheduled per use case, may declare
// dependencies, and are frequently optional.

var (
	currencyAmount = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`)
	riskTerms      = []string{"hazard", "liability", "penalty", "breach", "default", "violation", "exposure"}
	contractTerms  = []string{"indemnification", "termination", "liability", "governing law", "force majeure"}
)

// ComplianceReview scores how thoroughly the request addresses the use
// case's regulations. Each regulation whose name (or a token of it) never
// appears in the text lowers coverage.
func ComplianceReview() *Func {
	return NewFunc("compliance-review", func(_ context.Context, p Payload) (*Result, error) {
		result := &Result{
			Type:       DimensionIntegrity,
			Confidence: confidence(0.7),
		}

		if len(p.Regulations) == 0 {
			result.Score = score(85)
			return result, nil
		}

		lower := strings.ToLower(p.Text)
		covered := 0
		var unaddressed []string

		for _, reg := range p.Regulations {
			if regulationMentioned(lower, reg) {
				covered++
			} else {
				unaddressed = append(unaddressed, reg)
			}
		}

		coverage := float64(covered) / float64(len(p.Regulations))
		result.Score = score(50 + 50*coverage)
		result.Details = map[string]any{
			"regulations": len(p.Regulations),
			"covered":     covered,
		}

		for _, reg := range unaddressed {
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("address %s requirements explicitly", reg))
		}

		return result, nil
	})
}

// RiskProfile scores security exposure from risk-term density.
func RiskProfile() *Func {
	return NewFunc("risk-profile", func(_ context.Context, p Payload) (*Result, error) {
		lower := strings.ToLower(p.Text)

		hits := 0
		var found []string
		for _, term := range riskTerms {
			if n := strings.Count(lower, term); n > 0 {
				hits += n
				found = append(found, term)
			}
		}

		result := &Result{
			Type:       DimensionSecurity,
			Score:      score(max(90-8*float64(hits), 20)),
			Confidence: confidence(0.6),
		}

		if len(found) > 0 {
			result.Details = map[string]any{"risk_terms": found}
		}
		if hits >= 4 {
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionSecurity,
				Message:  "elevated risk-term density",
			})
		}

		return result, nil
	})
}

// ContractTerms checks for standard clause coverage in contract-like text.
func ContractTerms() *Func {
	return NewFunc("contract-terms", func(_ context.Context, p Payload) (*Result, error) {
		lower := strings.ToLower(p.Text)

		present := 0
		for _, term := range contractTerms {
			if strings.Contains(lower, term) {
				present++
			}
		}

		result := &Result{
			Type:       DimensionIntegrity,
			Score:      score(60 + 8*float64(present)),
			Confidence: confidence(0.6),
		}

		if present == 0 {
			result.Recommendations = append(result.Recommendations,
				"no standard contract clauses detected; confirm the full agreement text was submitted")
		}

		return result, nil
	})
}

// FinancialReconciliation cross-checks currency amounts in the text against
// a stated total when one is supplied in the payload data.
func FinancialReconciliation() *Func {
	return NewFunc("financial-reconciliation", func(_ context.Context, p Payload) (*Result, error) {
		result := &Result{
			Type:       DimensionAccuracy,
			Confidence: confidence(0.75),
		}

		amounts := currencyAmount.FindAllStringSubmatch(p.Text, -1)
		result.Details = map[string]any{"amounts_found": len(amounts)}

		total, hasTotal := numericField(p.Data, "total")
		if !hasTotal || len(amounts) == 0 {
			result.Score = score(85)
			return result, nil
		}

		var sum float64
		for _, m := range amounts {
			sum += parseAmount(m[1])
		}

		if total > 0 && sum > 0 && (sum > total*1.01 || sum < total*0.99) {
			result.Score = score(55)
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionAccuracy,
				Message:  fmt.Sprintf("amounts sum to %.2f but stated total is %.2f", sum, total),
			})
			return result, nil
		}

		result.Score = score(95)
		return result, nil
	})
}

// FieldExtraction copies configured fields from the payload data into the
// result details for downstream audit consumers. It never scores.
func FieldExtraction() *Func {
	return NewFunc("field-extraction", func(_ context.Context, p Payload) (*Result, error) {
		fields, ok := p.Config["fields"].([]string)
		if !ok || len(fields) == 0 {
			return &Result{}, nil
		}

		extracted := make(map[string]any)
		for _, field := range fields {
			if v, present := p.Data[field]; present {
				extracted[field] = v
			}
		}

		return &Result{Details: map[string]any{"extracted": extracted}}, nil
	})
}

func regulationMentioned(lower, regulation string) bool {
	reg := strings.ToLower(regulation)
	if strings.Contains(lower, reg) {
		return true
	}
	for token := range strings.FieldsSeq(reg) {
		if len(token) >= 4 && strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func numericField(data map[string]any, key string) (float64, bool) {
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	var v float64
	fmt.Sscanf(s, "%f", &v)
	return v
}
