// Package classifier implements heuristic classification of free-text
// analysis requests into a business vertical, use case, intent, and extracted
// entities. Classification is deterministic and rule-based: same text, same
// tables, same result.
package classifier

import (
	"slices"
	"strings"
)

// Entity is a typed value extracted from the request text.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Result is the classification of one request. Vertical and UseCase are
// empty when no rule matched; callers default the vertical to "general".
type Result struct {
	Vertical   string   `json:"vertical,omitempty"`
	UseCase    string   `json:"use_case,omitempty"`
	Keywords   []string `json:"keywords"`
	Entities   []Entity `json:"entities"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
}

// Classifier scores request text against static vertical, use-case, entity,
// and intent tables. Safe for concurrent use; all state is read-only after
// construction.
type Classifier struct {
	verticals []verticalProfile
	useCases  []useCasePattern
	phrases   []string
	stopwords map[string]struct{}
}

// New creates a Classifier with the default rule tables.
func New() *Classifier {
	return &Classifier{
		verticals: defaultVerticals(),
		useCases:  defaultUseCasePatterns(),
		phrases:   defaultPhrases(),
		stopwords: defaultStopwords(),
	}
}

// Classify analyzes text and produces a classification result.
func (c *Classifier) Classify(text string) Result {
	result := Result{
		Keywords: c.extractKeywords(text),
		Entities: extractEntities(text),
	}

	lower := strings.ToLower(text)

	vertical, score := c.scoreVerticals(lower)
	if vertical != "" {
		result.Vertical = vertical
		result.Confidence = min(score/5, 1)
	}

	// First matching pattern wins; table order is the documented tie-break.
	for _, uc := range c.useCases {
		if uc.pattern.MatchString(text) {
			result.UseCase = uc.id
			if result.Vertical == "" {
				result.Vertical = uc.vertical
			}
			result.Confidence = max(result.Confidence, 0.8)
			break
		}
	}

	result.Intent = classifyIntent(lower, result.Keywords)
	result.Confidence = adjustConfidence(result)

	return result
}

func (c *Classifier) extractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var keywords []string
	for token := range strings.FieldsSeq(lower) {
		token = strings.Trim(token, ".,;:!?()[]\"'")
		if len(token) < 3 {
			continue
		}
		if _, stop := c.stopwords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
	}

	for _, phrase := range c.phrases {
		if strings.Contains(lower, phrase) {
			keywords = append(keywords, phrase)
		}
	}

	slices.Sort(keywords)
	keywords = slices.Compact(keywords)

	if keywords == nil {
		keywords = []string{}
	}
	return keywords
}

// scoreVerticals counts lower-case substring occurrences of each vertical's
// terms, adding a 0.5 bonus per whole-word match. Highest score wins; ties
// resolve by table order.
func (c *Classifier) scoreVerticals(lower string) (string, float64) {
	best := ""
	bestScore := 0.0

	for _, v := range c.verticals {
		score := 0.0
		for i, term := range v.terms {
			score += float64(strings.Count(lower, term))
			if v.wordPatterns[i].MatchString(lower) {
				score += 0.5
			}
		}
		if score > bestScore {
			best = v.name
			bestScore = score
		}
	}

	return best, bestScore
}

// adjustConfidence applies the final floors and cap: both vertical and use
// case found raises confidence to at least 0.7, one of them to at least 0.5,
// and neither caps it at 0.3.
func adjustConfidence(r Result) float64 {
	switch {
	case r.Vertical != "" && r.UseCase != "":
		return max(r.Confidence, 0.7)
	case r.Vertical != "" || r.UseCase != "":
		return max(r.Confidence, 0.5)
	default:
		return min(r.Confidence, 0.3)
	}
}
