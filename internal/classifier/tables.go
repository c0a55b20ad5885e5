package classifier

import (
	"fmt"
	"regexp"
)

type verticalProfile struct {
	name         string
	terms        []string
	wordPatterns []*regexp.Regexp
}

type useCasePattern struct {
	id       string
	vertical string
	pattern  *regexp.Regexp
}

func newVertical(name string, terms ...string) verticalProfile {
	patterns := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		patterns[i] = regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(term)))
	}
	return verticalProfile{name: name, terms: terms, wordPatterns: patterns}
}

func defaultVerticals() []verticalProfile {
	return []verticalProfile{
		newVertical("energy",
			"oil", "gas", "lease", "mineral", "drilling", "pipeline",
			"royalty", "wellhead", "energy", "petroleum",
		),
		newVertical("finance",
			"loan", "mortgage", "interest", "portfolio", "investment",
			"credit", "banking", "expense", "invoice", "ledger",
		),
		newVertical("healthcare",
			"patient", "medical", "claim", "diagnosis", "hipaa",
			"provider", "treatment", "clinical", "insurance",
		),
		newVertical("legal",
			"contract", "agreement", "clause", "litigation", "counsel",
			"indemnification", "statute", "liability",
		),
		newVertical("construction",
			"construction", "contractor", "bid", "permit", "blueprint",
			"subcontractor", "zoning", "inspection",
		),
	}
}

// defaultUseCasePatterns is ordered: the first matching pattern wins, so
// more specific patterns come before broader ones within a vertical.
func defaultUseCasePatterns() []useCasePattern {
	return []useCasePattern{
		{"energy-oil-gas-lease", "energy", regexp.MustCompile(`(?i)oil\s+and\s+gas\s+lease|mineral\s+rights`)},
		{"energy-pipeline-compliance", "energy", regexp.MustCompile(`(?i)pipeline\s+(inspection|compliance|safety)`)},
		{"finance-loan-audit", "finance", regexp.MustCompile(`(?i)loan\s+(application|audit|portfolio|file)`)},
		{"finance-expense-review", "finance", regexp.MustCompile(`(?i)expense\s+report|invoice\s+(review|audit)`)},
		{"healthcare-claims-review", "healthcare", regexp.MustCompile(`(?i)(medical|insurance|health)\s+claims?`)},
		{"legal-contract-review", "legal", regexp.MustCompile(`(?i)contract\s+(review|analysis)|service\s+agreement`)},
		{"construction-bid-review", "construction", regexp.MustCompile(`(?i)construction\s+bid|bid\s+(proposal|package)`)},
	}
}

func defaultPhrases() []string {
	return []string{
		"oil and gas",
		"mineral rights",
		"due diligence",
		"risk assessment",
		"prior authorization",
		"change order",
		"letter of credit",
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "for", "this", "that", "with", "from", "are",
		"was", "were", "been", "have", "has", "had", "will", "would",
		"can", "could", "should", "may", "might", "must", "shall",
		"about", "into", "over", "under", "between", "out", "its",
		"any", "all", "each", "per", "not", "but", "also", "than",
		"then", "them", "they", "their", "there", "these", "those",
		"our", "your", "his", "her", "you", "who", "what", "when",
		"where", "which", "how", "why", "please",
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
