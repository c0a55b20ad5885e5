package classifier

import (
	"slices"
	"strings"
)

// Intent names produced by classification.
const (
	IntentReview         = "review"
	IntentValidation     = "validation"
	IntentCompliance     = "compliance"
	IntentCalculation    = "calculation"
	IntentComparison     = "comparison"
	IntentRiskAssessment = "risk-assessment"
	IntentAudit          = "audit"
	IntentReporting      = "reporting"
	IntentContractReview = "contract-review"
	IntentGeneral        = "general-analysis"
)

type intentCue struct {
	intent string
	verbs  []string
}

// Verb cues are checked in order; the first hit wins.
var intentCues = []intentCue{
	{IntentReview, []string{"review", "analyze", "analyse", "examine"}},
	{IntentValidation, []string{"validate", "verify", "confirm"}},
	{IntentCompliance, []string{"comply", "compliance", "conform"}},
	{IntentCalculation, []string{"calculate", "compute", "total"}},
	{IntentComparison, []string{"compare", "contrast", "benchmark"}},
	{IntentRiskAssessment, []string{"risk"}},
}

var intentKeywordFallbacks = []struct {
	intent  string
	keyword string
}{
	{IntentAudit, "audit"},
	{IntentReporting, "report"},
	{IntentContractReview, "contract"},
}

func classifyIntent(lower string, keywords []string) string {
	for _, cue := range intentCues {
		for _, verb := range cue.verbs {
			if strings.Contains(lower, verb) {
				return cue.intent
			}
		}
	}

	for _, fb := range intentKeywordFallbacks {
		if slices.Contains(keywords, fb.keyword) {
			return fb.intent
		}
	}

	return IntentGeneral
}
