package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/pkg/pagination"
	"github.com/JaimeStill/vigil/pkg/query"
	"github.com/JaimeStill/vigil/pkg/repository"
)

// recordTimeout bounds audit writes so a slow database cannot stall an
// execution that is otherwise finished with a step.
const recordTimeout = 5 * time.Second

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Execution], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "RequestText", "UseCaseID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count executions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExecution)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Execution, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExecution)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Steps(ctx context.Context, executionID uuid.UUID) ([]Step, error) {
	const q = `
		SELECT id, execution_id, step_id, capability_id, status, error,
			   duration_ms, recorded_at
		FROM execution_steps
		WHERE execution_id = $1
		ORDER BY recorded_at, id`

	steps, err := repository.QueryMany(ctx, r.db, q, []any{executionID}, scanStep)
	if err != nil {
		return nil, fmt.Errorf("query execution steps: %w", err)
	}
	return steps, nil
}

func (r *repo) RecordExecution(ctx context.Context, result *orchestrator.Result, vertical, requestText string) error {
	statusesJSON, err := json.Marshal(result.StepStatus)
	if err != nil {
		return fmt.Errorf("marshal step statuses: %w", err)
	}

	errorsJSON, err := json.Marshal(result.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}

	const q = `
		INSERT INTO executions(
			id, use_case_id, vertical, status, security_score, integrity_score,
			accuracy_score, duration_ms, step_statuses, errors, request_text
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, q,
		result.ExecutionID,
		result.UseCaseID,
		vertical,
		result.Status,
		result.Scores.Security,
		result.Scores.Integrity,
		result.Scores.Accuracy,
		result.Duration.Milliseconds(),
		statusesJSON,
		errorsJSON,
		requestText,
	)

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("execution recorded",
		"execution_id", result.ExecutionID,
		"use_case", result.UseCaseID,
		"status", result.Status,
	)
	return nil
}

// RecordStep satisfies orchestrator.Recorder. Write failures are logged and
// swallowed; the audit trail is best-effort by contract.
func (r *repo) RecordStep(ctx context.Context, event orchestrator.StepEvent) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	const q = `
		INSERT INTO execution_steps(
			execution_id, step_id, capability_id, status, error, duration_ms, recorded_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	_, err := r.db.ExecContext(ctx, q,
		event.ExecutionID,
		event.StepID,
		event.CapabilityID,
		event.Status,
		event.Error,
		event.Duration.Milliseconds(),
		event.Timestamp,
	)

	if err != nil {
		r.logger.Warn("step audit write failed",
			"execution_id", event.ExecutionID,
			"step", event.StepID,
			"error", err,
		)
	}
}
