package orchestrator

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Handles is the cross-execution cancellation table, mapping execution ids
// to cancellation handles. It is the only structure shared between concurrent
// executions and must tolerate concurrent insert, remove, and cancel.
type Handles struct {
	mu      sync.Mutex
	cancels map[uuid.UUID]context.CancelFunc
}

// NewHandles creates an empty handle table.
func NewHandles() *Handles {
	return &Handles{
		cancels: make(map[uuid.UUID]context.CancelFunc),
	}
}

// Register derives a cancellable context for an execution and stores its
// cancellation handle under id.
func (h *Handles) Register(ctx context.Context, id uuid.UUID) (context.Context, context.CancelFunc) {
	execCtx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancels[id] = cancel
	h.mu.Unlock()

	return execCtx, cancel
}

// Remove drops the handle for id. The caller remains responsible for
// releasing the context via the CancelFunc returned by Register.
func (h *Handles) Remove(id uuid.UUID) {
	h.mu.Lock()
	delete(h.cancels, id)
	h.mu.Unlock()
}

// Cancel requests cooperative cancellation of the execution with the given
// id. Returns ErrExecutionNotFound when no such execution is in flight.
func (h *Handles) Cancel(id uuid.UUID) error {
	h.mu.Lock()
	cancel, ok := h.cancels[id]
	h.mu.Unlock()

	if !ok {
		return ErrExecutionNotFound
	}

	cancel()
	return nil
}

// Active returns the ids of all in-flight executions.
func (h *Handles) Active() []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(h.cancels))
	for id := range h.cancels {
		ids = append(ids, id)
	}
	return ids
}
