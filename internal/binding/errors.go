package binding

import "errors"

// ErrUseCaseNotFound indicates resolution produced an id absent from the catalog.
var ErrUseCaseNotFound = errors.New("use case not found")
