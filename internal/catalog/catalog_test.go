package catalog_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/JaimeStill/vigil/internal/catalog"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDefaultCatalogSeed(t *testing.T) {
	c, err := catalog.NewDefault(discard())
	if err != nil {
		t.Fatalf("NewDefault failed: %v", err)
	}

	if _, ok := c.Get("energy-oil-gas-lease"); !ok {
		t.Error("missing energy-oil-gas-lease definition")
	}
	if _, ok := c.Get(catalog.GenericUseCaseID); !ok {
		t.Error("missing generic fallback definition")
	}

	energy := c.ListByVertical("energy")
	if len(energy) != 2 {
		t.Errorf("energy definitions: got %d, want 2", len(energy))
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := catalog.New(discard())

	def := catalog.Definition{ID: "dup", Vertical: "general"}
	if err := c.Register(def); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if err := c.Register(def); !errors.Is(err, catalog.ErrDuplicateUseCase) {
		t.Errorf("got %v, want ErrDuplicateUseCase", err)
	}
}

func TestRegisterAfterSeal(t *testing.T) {
	c := catalog.New(discard())
	c.Seal()

	err := c.Register(catalog.Definition{ID: "late", Vertical: "general"})
	if !errors.Is(err, catalog.ErrCatalogSealed) {
		t.Errorf("got %v, want ErrCatalogSealed", err)
	}
}

func TestRegisterRejectsCycle(t *testing.T) {
	c := catalog.New(discard())

	err := c.Register(catalog.Definition{
		ID:       "cyclic",
		Vertical: "general",
		BaseWorkflow: catalog.Workflow{
			Steps: []catalog.Step{
				{ID: "a", CapabilityID: "x", DependsOn: []string{"b"}},
				{ID: "b", CapabilityID: "y", DependsOn: []string{"a"}},
			},
		},
	})

	if !errors.Is(err, catalog.ErrCyclicWorkflow) {
		t.Errorf("got %v, want ErrCyclicWorkflow", err)
	}
}

func TestValidateWorkflow(t *testing.T) {
	tests := []struct {
		name    string
		steps   []catalog.Step
		wantErr bool
	}{
		{
			"empty workflow",
			nil,
			false,
		},
		{
			"linear chain",
			[]catalog.Step{
				{ID: "a", CapabilityID: "x"},
				{ID: "b", CapabilityID: "y", DependsOn: []string{"a"}},
				{ID: "c", CapabilityID: "z", DependsOn: []string{"b"}},
			},
			false,
		},
		{
			"diamond",
			[]catalog.Step{
				{ID: "a", CapabilityID: "w"},
				{ID: "b", CapabilityID: "x", DependsOn: []string{"a"}},
				{ID: "c", CapabilityID: "y", DependsOn: []string{"a"}},
				{ID: "d", CapabilityID: "z", DependsOn: []string{"b", "c"}},
			},
			false,
		},
		{
			"self dependency",
			[]catalog.Step{
				{ID: "a", CapabilityID: "x", DependsOn: []string{"a"}},
			},
			true,
		},
		{
			"unknown dependency",
			[]catalog.Step{
				{ID: "a", CapabilityID: "x", DependsOn: []string{"ghost"}},
			},
			true,
		},
		{
			"duplicate ids",
			[]catalog.Step{
				{ID: "a", CapabilityID: "x"},
				{ID: "a", CapabilityID: "y"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.ValidateWorkflow(catalog.Workflow{Steps: tt.steps})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkflow() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkflowCloneIsDeep(t *testing.T) {
	original := catalog.Workflow{
		Steps: []catalog.Step{
			{ID: "a", CapabilityID: "x", DependsOn: []string{"root"}, Config: map[string]any{"k": 1}},
			{ID: "root", CapabilityID: "y"},
		},
	}

	clone := original.Clone()
	clone.Steps[0].DependsOn[0] = "mutated"
	clone.Steps[0].Config["k"] = 2

	if original.Steps[0].DependsOn[0] != "root" {
		t.Error("clone shares DependsOn backing array")
	}
	if original.Steps[0].Config["k"] != 1 {
		t.Error("clone shares Config map")
	}
}
