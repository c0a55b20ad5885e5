package capability

import (
	"context"
	"sync/atomic"
)

// Func adapts a function to the Capability interface. Built-in capabilities
// and test fakes are both constructed through it.
type Func struct {
	id       string
	disabled atomic.Bool
	fn       func(ctx context.Context, payload Payload) (*Result, error)
}

// NewFunc creates an enabled capability from a function.
func NewFunc(id string, fn func(ctx context.Context, payload Payload) (*Result, error)) *Func {
	return &Func{id: id, fn: fn}
}

func (f *Func) ID() string {
	return f.id
}

func (f *Func) Enabled() bool {
	return !f.disabled.Load()
}

// SetEnabled toggles the capability. Steps referencing a disabled capability
// fail without invoking it.
func (f *Func) SetEnabled(enabled bool) {
	f.disabled.Store(!enabled)
}

func (f *Func) Invoke(ctx context.Context, payload Payload) (*Result, error) {
	return f.fn(ctx, payload)
}
