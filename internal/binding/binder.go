package binding

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
)

// DefaultStepTimeout bounds a step that declares no timeout of its own.
const DefaultStepTimeout = 30 * time.Second

// lowConfidenceMultiplier widens the execution timeout budget when the
// classifier was unsure: ambiguous requests tend to route through broader
// workflows.
const lowConfidenceMultiplier = 1.5

// Capabilities suggested from classified intent, appended during
// customization when the workflow does not already schedule them.
var intentSuggestions = map[string]string{
	classifier.IntentRiskAssessment: "risk-profile",
	classifier.IntentCompliance:     "compliance-review",
	classifier.IntentContractReview: "contract-terms",
}

// Binder resolves classifications to catalog use cases.
type Binder struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a Binder over the given catalog.
func New(c *catalog.Catalog, logger *slog.Logger) *Binder {
	return &Binder{
		catalog: c,
		logger:  logger.With("system", "binder"),
	}
}

// Bind resolves the use case for a classified request and builds its
// Binding. Resolution prefers an explicit use-case id, then the classifier's
// match, then inference over the catalog. Returns ErrUseCaseNotFound when
// resolution yields an id absent from the catalog.
func (b *Binder) Bind(c classifier.Result, explicitUseCaseID string) (*Binding, error) {
	def, err := b.resolve(c, explicitUseCaseID)
	if err != nil {
		return nil, err
	}

	workflow := b.customize(def, c)
	if err := catalog.ValidateWorkflow(workflow); err != nil {
		return nil, fmt.Errorf("customized workflow invalid: %w", err)
	}

	binding := &Binding{
		ID:             uuid.New(),
		UseCaseID:      def.ID,
		Classification: c,
		Workflow:       workflow,
		Context: Context{
			Vertical:    def.Vertical,
			UseCase:     def.ID,
			Regulations: def.Regulations,
			Thresholds:  def.Thresholds,
		},
		BaseScores:    def.BaseScores,
		TimeoutBudget: timeoutBudget(workflow, c.Confidence),
	}

	b.logger.Info("request bound",
		"binding_id", binding.ID,
		"use_case", def.ID,
		"steps", len(workflow.Steps),
		"confidence", c.Confidence,
	)
	return binding, nil
}

func (b *Binder) resolve(c classifier.Result, explicitID string) (catalog.Definition, error) {
	if explicitID != "" {
		return b.lookup(explicitID)
	}

	if c.UseCase != "" {
		return b.lookup(c.UseCase)
	}

	return b.infer(c)
}

func (b *Binder) lookup(id string) (catalog.Definition, error) {
	def, ok := b.catalog.Get(id)
	if !ok {
		return catalog.Definition{}, fmt.Errorf("%w: %s", ErrUseCaseNotFound, id)
	}
	return def, nil
}

// infer picks a definition for the classified vertical: the sole entry when
// there is exactly one, otherwise the entry whose name and id share the most
// tokens with the classified keywords (catalog order breaks ties), falling
// back to the vertical's first entry, then the generic default.
func (b *Binder) infer(c classifier.Result) (catalog.Definition, error) {
	vertical := c.Vertical
	if vertical == "" {
		vertical = "general"
	}

	defs := b.catalog.ListByVertical(vertical)
	switch len(defs) {
	case 0:
		return b.lookup(catalog.GenericUseCaseID)
	case 1:
		return defs[0], nil
	}

	best := defs[0]
	bestScore := 0
	for _, def := range defs {
		if score := keywordOverlap(def, c.Keywords); score > bestScore {
			best = def
			bestScore = score
		}
	}

	return best, nil
}

func keywordOverlap(def catalog.Definition, keywords []string) int {
	tokens := strings.Fields(strings.ToLower(def.Name))
	tokens = append(tokens, strings.Split(def.ID, "-")...)

	score := 0
	for _, token := range tokens {
		if slices.Contains(keywords, token) {
			score++
		}
	}
	return score
}

// customize applies one-shot workflow customization to a fresh copy of the
// base workflow: suggested capabilities not already scheduled (and not part
// of the mandatory baseline) become optional steps serialized after the
// static steps, each depending only on the previous tail.
func (b *Binder) customize(def catalog.Definition, c classifier.Result) catalog.Workflow {
	workflow := def.BaseWorkflow.Clone()

	present := make(map[string]bool, len(workflow.Steps))
	for _, s := range workflow.Steps {
		present[s.CapabilityID] = true
	}

	suggested := slices.Clone(def.RequiredCapabilities)
	if capID, ok := intentSuggestions[c.Intent]; ok {
		suggested = append(suggested, capID)
	}

	for _, capID := range suggested {
		if present[capID] || capability.IsBaseline(capID) {
			continue
		}

		step := catalog.Step{
			ID:           "dynamic-" + capID,
			Name:         "Suggested: " + capID,
			CapabilityID: capID,
			Optional:     true,
		}
		if n := len(workflow.Steps); n > 0 {
			step.DependsOn = []string{workflow.Steps[n-1].ID}
		}

		workflow.Steps = append(workflow.Steps, step)
		present[capID] = true
	}

	return workflow
}

// timeoutBudget sums the per-step budgets, widened for low-confidence
// classifications.
func timeoutBudget(w catalog.Workflow, confidence float64) time.Duration {
	budget := time.Duration(len(capability.Baseline())) * DefaultStepTimeout
	for _, s := range w.Steps {
		if s.Timeout > 0 {
			budget += s.Timeout
		} else {
			budget += DefaultStepTimeout
		}
	}

	if confidence < 0.5 {
		budget = time.Duration(float64(budget) * lowConfidenceMultiplier)
	}
	return budget
}
