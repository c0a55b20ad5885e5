package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/pkg/pagination"
)

// System defines the public contract for audit trail operations. Its
// RecordStep method satisfies orchestrator.Recorder, so a System can be
// handed to the orchestrator directly.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Execution], error)

	Find(ctx context.Context, id uuid.UUID) (*Execution, error)
	Steps(ctx context.Context, executionID uuid.UUID) ([]Step, error)

	RecordExecution(ctx context.Context, result *orchestrator.Result, vertical, requestText string) error
	RecordStep(ctx context.Context, event orchestrator.StepEvent)
}
