package capability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/JaimeStill/vigil/internal/capability"
)

func invoke(t *testing.T, c capability.Capability, p capability.Payload) *capability.Result {
	t.Helper()
	result, err := c.Invoke(context.Background(), p)
	if err != nil {
		t.Fatalf("invoke %s: %v", c.ID(), err)
	}
	return result
}

func TestSecurityScanCleanText(t *testing.T) {
	result := invoke(t, capability.SecurityScan(), capability.Payload{
		Text: "Review the attached lease agreement for renewal terms and conditions.",
	})

	if result.Type != capability.DimensionSecurity {
		t.Errorf("type: got %s, want security", result.Type)
	}
	if result.Score == nil || *result.Score != 100 {
		t.Errorf("score: got %v, want 100", result.Score)
	}
	if len(result.Flags) != 0 {
		t.Errorf("flags: got %v, want none", result.Flags)
	}
}

func TestSecurityScanFindings(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSeverity string
		wantContains string
	}{
		{
			name:         "ssn",
			text:         "Applicant SSN 123-45-6789 provided for verification.",
			wantSeverity: capability.SeverityCritical,
			wantContains: "SSN",
		},
		{
			name:         "credentials",
			text:         "Connect using password: hunter2 for the legacy system.",
			wantSeverity: capability.SeverityCritical,
			wantContains: "credential",
		},
		{
			name:         "injection",
			text:         "Notes field contained <script>alert(1)</script> content.",
			wantSeverity: capability.SeverityWarning,
			wantContains: "injection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := invoke(t, capability.SecurityScan(), capability.Payload{Text: tt.text})

			if result.Score == nil || *result.Score >= 100 {
				t.Errorf("score should be reduced, got %v", result.Score)
			}
			if len(result.Flags) == 0 {
				t.Fatal("expected at least one flag")
			}

			found := false
			for _, f := range result.Flags {
				if f.Severity == tt.wantSeverity && strings.Contains(f.Message, tt.wantContains) {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s flag mentioning %q in %v", tt.wantSeverity, tt.wantContains, result.Flags)
			}
		})
	}
}

func TestSecurityScanCriticalFindingsStack(t *testing.T) {
	result := invoke(t, capability.SecurityScan(), capability.Payload{
		Text: "SSN 123-45-6789 and password: hunter2 both present.",
	})

	if !result.Critical() {
		t.Error("result should carry a critical flag")
	}
	if result.Score == nil || *result.Score != 50 {
		t.Errorf("score: got %v, want 50 after two 25-point findings", result.Score)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("recommendations: got %d, want 2", len(result.Recommendations))
	}
}

func TestIntegrityScanShortText(t *testing.T) {
	result := invoke(t, capability.IntegrityScan(), capability.Payload{Text: "too short"})

	if result.Score == nil || *result.Score != 65 {
		t.Errorf("score: got %v, want 65", result.Score)
	}
	if len(result.Flags) != 1 {
		t.Fatalf("flags: got %d, want 1", len(result.Flags))
	}
	if !strings.Contains(result.Flags[0].Message, "too short") {
		t.Errorf("flag message: got %q", result.Flags[0].Message)
	}
}

func TestIntegrityScanConflictingOutcomes(t *testing.T) {
	result := invoke(t, capability.IntegrityScan(), capability.Payload{
		Text: "The application was approved by underwriting but rejected by compliance review.",
	})

	if result.Score == nil || *result.Score != 80 {
		t.Errorf("score: got %v, want 80", result.Score)
	}
	if len(result.Flags) != 1 {
		t.Errorf("flags: got %d, want 1", len(result.Flags))
	}
}

func TestIntegrityScanMissingRequiredFields(t *testing.T) {
	result := invoke(t, capability.IntegrityScan(), capability.Payload{
		Text:   "Evaluate the submitted loan application against current underwriting policy.",
		Config: map[string]any{"required_fields": []string{"income", "term"}},
		Data:   map[string]any{"income": 85000},
	})

	if result.Score == nil || *result.Score != 85 {
		t.Errorf("score: got %v, want 85 after one missing field", result.Score)
	}
	if result.Details == nil {
		t.Fatal("details should list missing fields")
	}
	missing, ok := result.Details["missing_fields"].([]string)
	if !ok || len(missing) != 1 || missing[0] != "term" {
		t.Errorf("missing_fields: got %v, want [term]", result.Details["missing_fields"])
	}
}

func TestAccuracyCheckImplausibleClaims(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore float64
	}{
		{
			name:      "clean",
			text:      "Quarterly revenue grew 12% against a projected total of $40,000.",
			wantScore: 95,
		},
		{
			name:      "impossible percentage",
			text:      "The report claims 250% completion of remediation work.",
			wantScore: 75,
		},
		{
			name:      "negative amount",
			text:      "Ledger shows an entry of -$500 without explanation.",
			wantScore: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := invoke(t, capability.AccuracyCheck(), capability.Payload{Text: tt.text})

			if result.Type != capability.DimensionAccuracy {
				t.Errorf("type: got %s, want accuracy", result.Type)
			}
			if result.Score == nil || *result.Score != tt.wantScore {
				t.Errorf("score: got %v, want %v", result.Score, tt.wantScore)
			}
		})
	}
}

func TestBaselineOrder(t *testing.T) {
	ids := capability.Baseline()
	want := []string{"security-scan", "integrity-audit", "accuracy-check"}

	if len(ids) != len(want) {
		t.Fatalf("baseline length: got %d, want %d", len(ids), len(want))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("baseline[%d]: got %s, want %s", i, id, want[i])
		}
		if !capability.IsBaseline(id) {
			t.Errorf("IsBaseline(%s) = false", id)
		}
	}
	if capability.IsBaseline("compliance-review") {
		t.Error("IsBaseline(compliance-review) = true")
	}
}
