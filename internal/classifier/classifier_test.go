package classifier_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/JaimeStill/vigil/internal/classifier"
)

func TestClassifyOilGasLease(t *testing.T) {
	c := classifier.New()

	result := c.Classify("Review this oil and gas lease agreement for mineral rights compliance")

	if result.Vertical != "energy" {
		t.Errorf("vertical: got %q, want energy", result.Vertical)
	}
	if result.UseCase != "energy-oil-gas-lease" {
		t.Errorf("use case: got %q, want energy-oil-gas-lease", result.UseCase)
	}
	if result.Confidence < 0.8 {
		t.Errorf("confidence: got %v, want >= 0.8", result.Confidence)
	}
	if result.Intent != classifier.IntentReview {
		t.Errorf("intent: got %q, want review", result.Intent)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := classifier.New()
	text := "Validate the loan application file for First National Bank Corp dated 03/15/2024 totaling $250,000.00 at 6.5% in Austin, TX"

	first := c.Classify(text)
	second := c.Classify(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassifyVerticals(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantVertical string
		wantUseCase  string
	}{
		{
			"finance loan audit",
			"Audit this loan application and verify the mortgage interest calculations",
			"finance",
			"finance-loan-audit",
		},
		{
			"healthcare claims",
			"Review these medical claims for the patient treatment records",
			"healthcare",
			"healthcare-claims-review",
		},
		{
			"legal contract",
			"Perform a contract review of the service agreement clause by clause",
			"legal",
			"legal-contract-review",
		},
		{
			"construction bid",
			"Evaluate this construction bid from the subcontractor including permit status",
			"construction",
			"construction-bid-review",
		},
		{
			"no vertical match",
			"Tell me a story about dragons",
			"",
			"",
		},
	}

	c := classifier.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text)

			if result.Vertical != tt.wantVertical {
				t.Errorf("vertical: got %q, want %q", result.Vertical, tt.wantVertical)
			}
			if result.UseCase != tt.wantUseCase {
				t.Errorf("use case: got %q, want %q", result.UseCase, tt.wantUseCase)
			}
		})
	}
}

func TestConfidenceBounds(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{
			"both vertical and use case floors at 0.7",
			"oil and gas lease",
			0.7, 1.0,
		},
		{
			"vertical only floors at 0.5",
			"drilling royalty wellhead",
			0.5, 1.0,
		},
		{
			"neither caps at 0.3",
			"hello there friend",
			0.0, 0.3,
		},
	}

	c := classifier.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text)

			if result.Confidence < tt.min || result.Confidence > tt.max {
				t.Errorf("confidence %v outside [%v, %v]", result.Confidence, tt.min, tt.max)
			}
		})
	}
}

func TestExtractEntities(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Acme Drilling Corp signed on 01/20/2024 for $1,500,000.00 at 12.5% royalty in Midland, TX",
	)

	wantTypes := map[string]string{
		classifier.EntityDate:         "01/20/2024",
		classifier.EntityCurrency:     "$1,500,000.00",
		classifier.EntityOrganization: "Acme Drilling Corp",
		classifier.EntityLocation:     "Midland, TX",
	}

	for entityType, wantValue := range wantTypes {
		found := false
		for _, e := range result.Entities {
			if e.Type == entityType && e.Value == wantValue {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing entity %s=%q in %+v", entityType, wantValue, result.Entities)
		}
	}

	hasPercentage := slices.ContainsFunc(result.Entities, func(e classifier.Entity) bool {
		return e.Type == classifier.EntityPercentage
	})
	if !hasPercentage {
		t.Errorf("missing percentage entity in %+v", result.Entities)
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"review verb", "Review the quarterly filings", classifier.IntentReview},
		{"validate verb", "Validate these figures", classifier.IntentValidation},
		{"compliance verb", "Does this comply with the statute", classifier.IntentCompliance},
		{"calculate verb", "Calculate the outstanding balance", classifier.IntentCalculation},
		{"compare verb", "Compare the two proposals", classifier.IntentComparison},
		{"risk cue", "What is the counterparty risk here", classifier.IntentRiskAssessment},
		{"audit keyword fallback", "Full audit of the books", classifier.IntentAudit},
		{"no cue", "Summarize the attachment", classifier.IntentGeneral},
	}

	c := classifier.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := c.Classify(tt.text); result.Intent != tt.want {
				t.Errorf("intent: got %q, want %q", result.Intent, tt.want)
			}
		})
	}
}

func TestKeywordsStripStopwords(t *testing.T) {
	c := classifier.New()

	result := c.Classify("Review the lease for the mineral rights")

	if slices.Contains(result.Keywords, "the") {
		t.Errorf("stopword leaked into keywords: %v", result.Keywords)
	}
	if !slices.Contains(result.Keywords, "lease") {
		t.Errorf("expected keyword lease in %v", result.Keywords)
	}
	if !slices.Contains(result.Keywords, "mineral rights") {
		t.Errorf("expected phrase keyword in %v", result.Keywords)
	}
}
