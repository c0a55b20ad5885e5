package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/audit"
	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/internal/report"
)

type service struct {
	classifier   *classifier.Classifier
	binder       *binding.Binder
	orchestrator *orchestrator.Orchestrator
	catalog      *catalog.Catalog
	audit        audit.System
	reports      report.System
	logger       *slog.Logger
}

// New creates the analysis pipeline implementing the System interface. A nil
// audit system disables execution summaries; a nil report system disables
// archiving.
func New(
	cls *classifier.Classifier,
	binder *binding.Binder,
	orch *orchestrator.Orchestrator,
	cat *catalog.Catalog,
	auditSys audit.System,
	reports report.System,
	logger *slog.Logger,
) System {
	if reports == nil {
		reports = report.NewNop()
	}
	return &service{
		classifier:   cls,
		binder:       binder,
		orchestrator: orch,
		catalog:      cat,
		audit:        auditSys,
		reports:      reports,
		logger:       logger.With("system", "analysis"),
	}
}

func (s *service) Handler(maxRequestSize int64) *Handler {
	return NewHandler(s, s.logger, maxRequestSize)
}

func (s *service) Analyze(ctx context.Context, req Request) (*Report, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyRequest
	}

	classification := s.classifier.Classify(req.Text)

	bound, err := s.binder.Bind(classification, req.UseCaseID)
	if err != nil {
		return nil, err
	}

	payload := capability.Payload{
		Text:        req.Text,
		Vertical:    bound.Context.Vertical,
		UseCase:     bound.UseCaseID,
		Regulations: bound.Context.Regulations,
		Data:        req.Data,
	}

	result, err := s.orchestrator.Execute(ctx, bound, payload)
	if err != nil {
		return nil, err
	}

	rep := assembleReport(result, bound)

	if s.audit != nil {
		if err := s.audit.RecordExecution(ctx, result, bound.Context.Vertical, req.Text); err != nil {
			s.logger.Warn("execution audit write failed",
				"execution_id", result.ExecutionID,
				"error", err,
			)
		}
	}

	key, err := s.reports.Archive(ctx, result.ExecutionID, rep)
	if err != nil {
		s.logger.Warn("report archive failed",
			"execution_id", result.ExecutionID,
			"error", err,
		)
	} else {
		rep.ReportKey = key
	}

	return rep, nil
}

func (s *service) Cancel(executionID uuid.UUID) error {
	if err := s.orchestrator.Cancel(executionID); err != nil {
		return err
	}

	s.logger.Info("cancellation requested", "execution_id", executionID)
	return nil
}

func (s *service) Classify(text string) (classifier.Result, error) {
	if strings.TrimSpace(text) == "" {
		return classifier.Result{}, ErrEmptyRequest
	}
	return s.classifier.Classify(text), nil
}

func (s *service) UseCases() []UseCaseSummary {
	ids := s.catalog.IDs()
	summaries := make([]UseCaseSummary, 0, len(ids))

	for _, id := range ids {
		def, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		summaries = append(summaries, UseCaseSummary{
			ID:          def.ID,
			Vertical:    def.Vertical,
			Name:        def.Name,
			Steps:       len(def.BaseWorkflow.Steps),
			Regulations: def.Regulations,
		})
	}

	return summaries
}

func (s *service) UseCase(id string) (catalog.Definition, error) {
	def, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Definition{}, fmt.Errorf("%w: %s", binding.ErrUseCaseNotFound, id)
	}
	return def, nil
}

func assembleReport(result *orchestrator.Result, bound *binding.Binding) *Report {
	return &Report{
		ExecutionID:     result.ExecutionID,
		Status:          result.Status,
		UseCaseID:       result.UseCaseID,
		Classification:  bound.Classification,
		Context:         bound.Context,
		Scores:          result.Scores,
		StepStatus:      result.StepStatus,
		Results:         result.Results,
		CriticalIssues:  result.CriticalIssues(),
		Recommendations: result.Recommendations(),
		Errors:          result.Errors,
		Duration:        result.Duration,
	}
}
