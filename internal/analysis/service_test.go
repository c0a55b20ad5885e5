package analysis_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/vigil/internal/analysis"
	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
	"github.com/JaimeStill/vigil/internal/orchestrator"
)

func testSystem(t *testing.T) analysis.System {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	cat, err := catalog.NewDefault(logger)
	if err != nil {
		t.Fatalf("catalog setup failed: %v", err)
	}

	registry, err := capability.NewDefaultRegistry(logger, gaconfig.AgentConfig{}, false)
	if err != nil {
		t.Fatalf("registry setup failed: %v", err)
	}

	orch := orchestrator.New(registry, nil, logger, orchestrator.Config{
		DefaultStepTimeout: 5 * time.Second,
	})

	return analysis.New(
		classifier.New(),
		binding.New(cat, logger),
		orch,
		cat,
		nil,
		nil,
		logger,
	)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	sys := testSystem(t)

	rep, err := sys.Analyze(context.Background(), analysis.Request{
		Text: "Review this oil and gas lease for royalty calculation accuracy and regulatory compliance",
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if rep.UseCaseID != "energy-oil-gas-lease" {
		t.Errorf("use case: got %s, want energy-oil-gas-lease", rep.UseCaseID)
	}
	if rep.Classification.Vertical != "energy" {
		t.Errorf("vertical: got %s, want energy", rep.Classification.Vertical)
	}
	if rep.Status != orchestrator.StatusCompleted && rep.Status != orchestrator.StatusPartial {
		t.Errorf("status: got %s, want completed or partial", rep.Status)
	}
	if rep.ExecutionID == uuid.Nil {
		t.Error("execution id not assigned")
	}

	for _, id := range capability.Baseline() {
		status, ok := rep.StepStatus[id]
		if !ok {
			t.Errorf("baseline step %s missing from report", id)
			continue
		}
		if status != orchestrator.StepDone {
			t.Errorf("baseline step %s: got %s, want done", id, status)
		}
	}

	if rep.Scores.Security < 0 || rep.Scores.Security > 100 {
		t.Errorf("security score out of range: %d", rep.Scores.Security)
	}
}

func TestAnalyzeExplicitUseCase(t *testing.T) {
	sys := testSystem(t)

	rep, err := sys.Analyze(context.Background(), analysis.Request{
		Text:      "Check these invoices against the reported totals",
		UseCaseID: "finance-expense-review",
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if rep.UseCaseID != "finance-expense-review" {
		t.Errorf("use case: got %s, want finance-expense-review", rep.UseCaseID)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	sys := testSystem(t)

	_, err := sys.Analyze(context.Background(), analysis.Request{Text: "   "})
	if !errors.Is(err, analysis.ErrEmptyRequest) {
		t.Errorf("got %v, want ErrEmptyRequest", err)
	}
}

func TestAnalyzeUnknownUseCase(t *testing.T) {
	sys := testSystem(t)

	_, err := sys.Analyze(context.Background(), analysis.Request{
		Text:      "Review this document",
		UseCaseID: "no-such-use-case",
	})
	if !errors.Is(err, binding.ErrUseCaseNotFound) {
		t.Errorf("got %v, want ErrUseCaseNotFound", err)
	}
}

func TestAnalyzeCriticalFindingsSurface(t *testing.T) {
	sys := testSystem(t)

	rep, err := sys.Analyze(context.Background(), analysis.Request{
		Text: "Audit this loan application, borrower SSN 123-45-6789, password=hunter2",
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if len(rep.CriticalIssues) == 0 {
		t.Error("expected critical issues for exposed SSN and credential")
	}
	if rep.Scores.Security >= 100 {
		t.Errorf("security score not penalized: %d", rep.Scores.Security)
	}
}

func TestCancelUnknownExecution(t *testing.T) {
	sys := testSystem(t)

	err := sys.Cancel(uuid.New())
	if !errors.Is(err, orchestrator.ErrExecutionNotFound) {
		t.Errorf("got %v, want ErrExecutionNotFound", err)
	}
}

func TestClassifyPreview(t *testing.T) {
	sys := testSystem(t)

	result, err := sys.Classify("Review pipeline inspection records for PHMSA compliance")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	if result.Vertical != "energy" {
		t.Errorf("vertical: got %s, want energy", result.Vertical)
	}

	if _, err := sys.Classify(""); !errors.Is(err, analysis.ErrEmptyRequest) {
		t.Errorf("empty text: got %v, want ErrEmptyRequest", err)
	}
}

func TestUseCaseLookup(t *testing.T) {
	sys := testSystem(t)

	def, err := sys.UseCase("energy-oil-gas-lease")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if def.Vertical != "energy" {
		t.Errorf("vertical: got %s, want energy", def.Vertical)
	}
	if len(def.BaseWorkflow.Steps) == 0 {
		t.Error("expected workflow steps in definition")
	}

	if _, err := sys.UseCase("no-such-case"); !errors.Is(err, binding.ErrUseCaseNotFound) {
		t.Errorf("got %v, want ErrUseCaseNotFound", err)
	}
}

func TestUseCasesListing(t *testing.T) {
	sys := testSystem(t)

	cases := sys.UseCases()
	if len(cases) == 0 {
		t.Fatal("no use cases listed")
	}

	found := false
	for _, uc := range cases {
		if uc.ID == catalog.GenericUseCaseID {
			found = true
		}
		if uc.Name == "" {
			t.Errorf("use case %s has no name", uc.ID)
		}
	}
	if !found {
		t.Errorf("generic use case %s missing from listing", catalog.GenericUseCaseID)
	}
}
