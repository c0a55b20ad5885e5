package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
)

// System defines the public contract for the analysis pipeline.
type System interface {
	Handler(maxRequestSize int64) *Handler

	Analyze(ctx context.Context, req Request) (*Report, error)
	Cancel(executionID uuid.UUID) error
	Classify(text string) (classifier.Result, error)
	UseCases() []UseCaseSummary
	UseCase(id string) (catalog.Definition, error)
}
