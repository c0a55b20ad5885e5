package capability

import "errors"

// Sentinel errors for registry and invocation failures.
var (
	ErrDuplicateCapability = errors.New("capability already registered")
	ErrCapabilityNotFound  = errors.New("capability not found")
	ErrCapabilityDisabled  = errors.New("capability disabled")
)
