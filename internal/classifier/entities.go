package classifier

import "regexp"

// Entity type names.
const (
	EntityDate         = "date"
	EntityCurrency     = "currency"
	EntityPercentage   = "percentage"
	EntityOrganization = "organization"
	EntityLocation     = "location"
)

type entityPattern struct {
	entityType string
	pattern    *regexp.Regexp
}

// Entity extraction runs the patterns in this order, so entity output order
// is stable for identical text.
var entityPatterns = []entityPattern{
	{EntityDate, regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)},
	{EntityDate, regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)},
	{EntityCurrency, regexp.MustCompile(`\$\s*[\d,]+(?:\.\d{1,2})?`)},
	{EntityPercentage, regexp.MustCompile(`\b\d+(?:\.\d+)?\s*%`)},
	{EntityOrganization, regexp.MustCompile(`\b(?:[A-Z][A-Za-z&]+\s+)+(?:Inc|LLC|Corp|Company)\b\.?`)},
	{EntityLocation, regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s+[A-Z]{2}\b`)},
}

func extractEntities(text string) []Entity {
	var entities []Entity
	for _, ep := range entityPatterns {
		for _, match := range ep.pattern.FindAllString(text, -1) {
			entities = append(entities, Entity{Type: ep.entityType, Value: match})
		}
	}

	if entities == nil {
		entities = []Entity{}
	}
	return entities
}
