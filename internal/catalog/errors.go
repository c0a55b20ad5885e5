package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	ErrInvalidDefinition = errors.New("invalid use-case definition")
	ErrDuplicateUseCase  = errors.New("use case already registered")
	ErrCatalogSealed     = errors.New("catalog is sealed")
	ErrCyclicWorkflow    = errors.New("workflow dependency cycle")
)
