package capability

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Baseline heuristics. Each scans the request text for dimension-specific
// problems and produces a score for its own trust dimension. They are
// deterministic: same payload, same result.

var (
	ssnPattern        = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	cardPattern       = regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`)
	credentialPattern = regexp.MustCompile(`(?i)\b(password|passwd|secret|api[_ ]?key|access[_ ]?token)\b\s*[:=]`)
	injectionPattern  = regexp.MustCompile(`(?i)(<script\b|\bdrop\s+table\b|\bunion\s+select\b|\.\./\.\./)`)

	overPercentPattern  = regexp.MustCompile(`\b(\d{3,})(?:\.\d+)?\s*%`)
	negativeAmtPattern  = regexp.MustCompile(`-\s*\$\s*\d`)
	implausibleYear     = regexp.MustCompile(`\b(1[0-8]\d{2}|2[2-9]\d{2})\b`)
	conflictingOutcomes = [][2]string{
		{"approved", "rejected"},
		{"compliant", "non-compliant"},
		{"valid", "invalid"},
	}
)

// SecurityScan checks the request for exposed sensitive data and injection
// markers. Exposed credentials and identifiers are critical findings.
func SecurityScan() *Func {
	return NewFunc(CapSecurityScan, func(_ context.Context, p Payload) (*Result, error) {
		result := &Result{
			Type:       DimensionSecurity,
			Confidence: confidence(0.9),
			Details:    map[string]any{"length": len(p.Text)},
		}

		value := 100.0

		if ssnPattern.MatchString(p.Text) {
			value -= 25
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityCritical,
				Category: DimensionSecurity,
				Message:  "text contains an SSN-formatted identifier",
			})
			result.Recommendations = append(result.Recommendations, "redact personal identifiers before analysis")
		}

		if credentialPattern.MatchString(p.Text) {
			value -= 25
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityCritical,
				Category: DimensionSecurity,
				Message:  "text appears to contain credential material",
			})
			result.Recommendations = append(result.Recommendations, "strip credentials from submitted content")
		}

		if cardPattern.MatchString(p.Text) {
			value -= 15
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionSecurity,
				Message:  "text contains a card-length digit sequence",
			})
		}

		if injectionPattern.MatchString(p.Text) {
			value -= 10
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionSecurity,
				Message:  "text contains injection-style markers",
			})
		}

		result.Score = score(max(value, 0))
		return result, nil
	})
}

// IntegrityScan checks the request for internal consistency: contradictory
// outcome language, missing required data fields, and degenerate input.
func IntegrityScan() *Func {
	return NewFunc(CapIntegrityScan, func(_ context.Context, p Payload) (*Result, error) {
		result := &Result{
			Type:       DimensionIntegrity,
			Confidence: confidence(0.8),
		}

		value := 95.0
		lower := strings.ToLower(p.Text)

		if len(strings.TrimSpace(p.Text)) < 20 {
			value -= 30
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionIntegrity,
				Message:  "request text too short for reliable analysis",
			})
		}

		for _, pair := range conflictingOutcomes {
			if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
				value -= 15
				result.Flags = append(result.Flags, Flag{
					Severity: SeverityWarning,
					Category: DimensionIntegrity,
					Message:  fmt.Sprintf("text asserts both %q and %q", pair[0], pair[1]),
				})
			}
		}

		if missing := missingFields(p); len(missing) > 0 {
			value -= 10 * float64(len(missing))
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionIntegrity,
				Message:  fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			})
			result.Details = map[string]any{"missing_fields": missing}
		}

		result.Score = score(max(value, 0))
		return result, nil
	})
}

// AccuracyCheck checks the request for numerically implausible claims:
// impossible percentages, negative currency amounts, and out-of-range years.
func AccuracyCheck() *Func {
	return NewFunc(CapAccuracyCheck, func(_ context.Context, p Payload) (*Result, error) {
		result := &Result{
			Type:       DimensionAccuracy,
			Confidence: confidence(0.8),
		}

		value := 95.0

		if m := overPercentPattern.FindStringSubmatch(p.Text); m != nil && m[1] != "100" {
			value -= 20
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityWarning,
				Category: DimensionAccuracy,
				Message:  fmt.Sprintf("implausible percentage: %s%%", m[1]),
			})
		}

		if negativeAmtPattern.MatchString(p.Text) {
			value -= 10
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityInfo,
				Category: DimensionAccuracy,
				Message:  "negative currency amount present",
			})
		}

		if implausibleYear.MatchString(p.Text) {
			value -= 10
			result.Flags = append(result.Flags, Flag{
				Severity: SeverityInfo,
				Category: DimensionAccuracy,
				Message:  "year outside plausible document range",
			})
		}

		result.Score = score(max(value, 0))
		return result, nil
	})
}

func missingFields(p Payload) []string {
	required, ok := p.Config["required_fields"].([]string)
	if !ok {
		return nil
	}

	var missing []string
	for _, field := range required {
		if _, present := p.Data[field]; !present {
			missing = append(missing, field)
		}
	}
	return missing
}
