// Package catalog holds the use-case catalog: static definitions mapping a
// use case to its vertical, base workflow, regulations, thresholds, and
// baseline scores. The catalog is populated at startup, optionally sealed,
// and read-only at runtime.
package catalog

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/JaimeStill/vigil/internal/scoring"
)

// GenericUseCaseID is the fallback definition used when no vertical-specific
// use case can be resolved.
const GenericUseCaseID = "general-analysis"

// Threshold bounds a named metric for a use case. Nil ends are unbounded.
type Threshold struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Step is one scheduled capability invocation within a workflow. DependsOn
// references other step ids in the same workflow; the step graph must be
// acyclic. Timeout zero means the orchestrator default applies.
type Step struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	CapabilityID string         `json:"capability_id"`
	DependsOn    []string       `json:"depends_on,omitempty"`
	Optional     bool           `json:"optional"`
	Timeout      time.Duration  `json:"timeout,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	c := s
	c.DependsOn = slices.Clone(s.DependsOn)
	if s.Config != nil {
		c.Config = make(map[string]any, len(s.Config))
		for k, v := range s.Config {
			c.Config[k] = v
		}
	}
	return c
}

// Workflow is an ordered set of steps forming a DAG. Declaration order is
// the deterministic tie-break when several steps become runnable together.
type Workflow struct {
	Steps []Step `json:"steps"`
}

// Clone returns a deep copy of the workflow, so bind-time customization
// never mutates the catalog's base definition.
func (w Workflow) Clone() Workflow {
	steps := make([]Step, len(w.Steps))
	for i, s := range w.Steps {
		steps[i] = s.Clone()
	}
	return Workflow{Steps: steps}
}

// Definition describes one use case: the analysis scenario, its base
// workflow, and the scoring context.
type Definition struct {
	ID                   string               `json:"id"`
	Vertical             string               `json:"vertical"`
	Name                 string               `json:"name"`
	BaseWorkflow         Workflow             `json:"base_workflow"`
	RequiredCapabilities []string             `json:"required_capabilities,omitempty"`
	Regulations          []string             `json:"regulations,omitempty"`
	Thresholds           map[string]Threshold `json:"thresholds,omitempty"`
	BaseScores           scoring.Scores       `json:"base_scores"`
}

// Catalog is an append-only, initialize-once store of use-case definitions.
// Register is guarded: it validates workflow DAGs and refuses writes after
// Seal. Lookups are safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	defs   map[string]Definition
	order  []string
	sealed bool
	logger *slog.Logger
}

// New creates an empty catalog.
func New(logger *slog.Logger) *Catalog {
	return &Catalog{
		defs:   make(map[string]Definition),
		logger: logger.With("system", "catalog"),
	}
}

// NewDefault creates a catalog seeded with the built-in use-case definitions.
func NewDefault(logger *slog.Logger) (*Catalog, error) {
	c := New(logger)
	for _, def := range defaultDefinitions() {
		if err := c.Register(def); err != nil {
			return nil, fmt.Errorf("register %s: %w", def.ID, err)
		}
	}
	return c, nil
}

// Register adds a definition. Workflow DAGs are validated here so a cyclic
// graph can never reach execution.
func (c *Catalog) Register(def Definition) error {
	if def.ID == "" {
		return ErrInvalidDefinition
	}
	if err := ValidateWorkflow(def.BaseWorkflow); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, def.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return ErrCatalogSealed
	}
	if _, exists := c.defs[def.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUseCase, def.ID)
	}

	c.defs[def.ID] = def
	c.order = append(c.order, def.ID)
	c.logger.Debug("use case registered", "id", def.ID, "vertical", def.Vertical)
	return nil
}

// Seal closes the catalog to further registration.
func (c *Catalog) Seal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true
}

// Get returns the definition for id, or false if absent.
func (c *Catalog) Get(id string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[id]
	return def, ok
}

// ListByVertical returns the definitions for a vertical in registration order.
func (c *Catalog) ListByVertical(vertical string) []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var defs []Definition
	for _, id := range c.order {
		if def := c.defs[id]; def.Vertical == vertical {
			defs = append(defs, def)
		}
	}
	return defs
}

// IDs returns all registered use-case ids in registration order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}
