package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/scoring"
)

// Defaults applied when Config fields are zero.
const (
	DefaultStepTimeout = 30 * time.Second
	DefaultConcurrency = 4
)

// Recorder receives step outcomes, best-effort. Implementations must swallow
// their own failures; an audit outage never aborts an orchestration.
type Recorder interface {
	RecordStep(ctx context.Context, event StepEvent)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) RecordStep(context.Context, StepEvent) {}

// Config holds orchestration tuning.
type Config struct {
	DefaultStepTimeout time.Duration
	MaxConcurrency     int
}

func (c Config) stepTimeout(declared time.Duration) time.Duration {
	if declared > 0 {
		return declared
	}
	if c.DefaultStepTimeout > 0 {
		return c.DefaultStepTimeout
	}
	return DefaultStepTimeout
}

func (c Config) concurrency() int {
	if c.MaxConcurrency > 0 {
		return c.MaxConcurrency
	}
	return DefaultConcurrency
}

// Orchestrator schedules workflow steps against the capability registry.
// It owns no per-execution state between calls; the handle table is the only
// structure shared across executions.
type Orchestrator struct {
	registry *capability.Registry
	recorder Recorder
	handles  *Handles
	logger   *slog.Logger
	cfg      Config
}

// New creates an Orchestrator. A nil recorder disables audit reporting.
func New(registry *capability.Registry, recorder Recorder, logger *slog.Logger, cfg Config) *Orchestrator {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Orchestrator{
		registry: registry,
		recorder: recorder,
		handles:  NewHandles(),
		logger:   logger.With("system", "orchestrator"),
		cfg:      cfg,
	}
}

// Cancel requests cooperative cancellation of an in-flight execution.
func (o *Orchestrator) Cancel(executionID uuid.UUID) error {
	return o.handles.Cancel(executionID)
}

// Active returns the ids of in-flight executions.
func (o *Orchestrator) Active() []uuid.UUID {
	return o.handles.Active()
}

// Execute runs the binding's workflow. The three baseline capabilities run
// first in fixed order, each required; workflow steps then dispatch as their
// dependencies reach terminal states, independent steps concurrently. Step
// failures never surface as errors; they are recorded in the result. An
// error returns only when cancellation was requested before the execution
// started.
func (o *Orchestrator) Execute(ctx context.Context, b *binding.Binding, payload capability.Payload) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: before start: %w", ErrExecutionCancelled, err)
	}

	executionID := uuid.New()
	started := time.Now()

	if b.TimeoutBudget > 0 {
		var cancelBudget context.CancelFunc
		ctx, cancelBudget = context.WithTimeoutCause(ctx, b.TimeoutBudget, ErrBudgetExceeded)
		defer cancelBudget()
	}

	execCtx, cancel := o.handles.Register(ctx, executionID)
	defer func() {
		o.handles.Remove(executionID)
		cancel()
	}()

	o.logger.Info("execution started",
		"execution_id", executionID,
		"use_case", b.UseCaseID,
		"steps", len(b.Workflow.Steps),
	)

	run := newRun(executionID, b, o)
	requiredFailed := run.execute(execCtx, payload)

	result := run.finish(execCtx, b, requiredFailed, time.Since(started))

	o.logger.Info("execution finished",
		"execution_id", executionID,
		"status", result.Status,
		"duration", result.Duration,
		"errors", len(result.Errors),
	)
	return result, nil
}

// run is the per-execution state machine. It is owned by exactly one
// Execute call and never shared.
type run struct {
	executionID   uuid.UUID
	orchestrator  *Orchestrator
	steps         []step
	index         map[string]int
	outcomes      []outcome
	baselineCount int
}

func newRun(executionID uuid.UUID, b *binding.Binding, o *Orchestrator) *run {
	baseline := capability.Baseline()

	steps := make([]step, 0, len(baseline)+len(b.Workflow.Steps))
	for _, capID := range baseline {
		steps = append(steps, step{
			id:           capID,
			name:         "Baseline: " + capID,
			capabilityID: capID,
		})
	}
	for _, s := range b.Workflow.Steps {
		steps = append(steps, step{
			id:           s.ID,
			name:         s.Name,
			capabilityID: s.CapabilityID,
			dependsOn:    s.DependsOn,
			optional:     s.Optional,
			timeout:      s.Timeout,
			config:       s.Config,
		})
	}

	index := make(map[string]int, len(steps))
	outcomes := make([]outcome, len(steps))
	for i, s := range steps {
		index[s.id] = i
		outcomes[i] = outcome{status: StepPending}
	}

	return &run{
		executionID:   executionID,
		orchestrator:  o,
		steps:         steps,
		index:         index,
		outcomes:      outcomes,
		baselineCount: len(baseline),
	}
}

// execute drives the two scheduling phases and reports whether a required
// step failed.
func (r *run) execute(ctx context.Context, payload capability.Payload) bool {
	// Phase 1: baseline, sequential, fixed order, every step required.
	for i := range r.baselineCount {
		if ctx.Err() != nil {
			return false
		}

		r.outcomes[i] = r.orchestrator.runStep(ctx, r.executionID, r.steps[i], payload)
		if r.outcomes[i].status != StepDone {
			r.skipPending()
			return true
		}
	}

	// Phase 2: dependency-gated waves over the workflow steps.
	for {
		if ctx.Err() != nil {
			return false
		}

		r.propagateSkips()

		wave := r.runnable()
		if len(wave) == 0 {
			return false
		}

		g := new(errgroup.Group)
		g.SetLimit(r.orchestrator.cfg.concurrency())

		for _, i := range wave {
			r.outcomes[i].status = StepRunning
			g.Go(func() error {
				r.outcomes[i] = r.orchestrator.runStep(ctx, r.executionID, r.steps[i], payload)
				return nil
			})
		}
		g.Wait()

		for _, i := range wave {
			if r.steps[i].optional {
				continue
			}
			switch r.outcomes[i].status {
			case StepFailed, StepTimedOut:
				r.skipPending()
				return true
			}
		}
	}
}

// runnable returns the pending steps whose dependencies are all done, in
// declaration order.
func (r *run) runnable() []int {
	var wave []int
	for i, s := range r.steps {
		if r.outcomes[i].status != StepPending {
			continue
		}

		ready := true
		for _, dep := range s.dependsOn {
			j, known := r.index[dep]
			if !known || r.outcomes[j].status != StepDone {
				ready = false
				break
			}
		}
		if ready {
			wave = append(wave, i)
		}
	}
	return wave
}

// propagateSkips marks pending steps skipped when any dependency terminated
// without completing, repeating until no more steps are affected so skips
// reach transitive dependents.
func (r *run) propagateSkips() {
	for {
		changed := false
		for i, s := range r.steps {
			if r.outcomes[i].status != StepPending {
				continue
			}
			for _, dep := range s.dependsOn {
				j, known := r.index[dep]
				if !known {
					continue
				}
				switch r.outcomes[j].status {
				case StepFailed, StepTimedOut, StepSkipped:
					r.outcomes[i] = outcome{status: StepSkipped}
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// skipPending marks every step that has not reached a terminal state as
// skipped. Used when a required step halts the run or cancellation fires.
func (r *run) skipPending() {
	for i := range r.outcomes {
		if !r.outcomes[i].terminal() {
			r.outcomes[i] = outcome{status: StepSkipped}
		}
	}
}

// finish derives the overall status and assembles the result.
func (r *run) finish(ctx context.Context, b *binding.Binding, requiredFailed bool, duration time.Duration) *Result {
	cancelled := ctx.Err() != nil
	budgetExceeded := errors.Is(context.Cause(ctx), ErrBudgetExceeded)
	if cancelled {
		r.skipPending()
	}

	result := &Result{
		ExecutionID: r.executionID,
		UseCaseID:   b.UseCaseID,
		Results:     make(map[string]*capability.Result),
		StepStatus:  make(map[string]string, len(r.steps)),
		Duration:    duration,
		stepOrder:   make([]string, 0, len(r.steps)),
	}

	var ordered []*capability.Result
	for i, s := range r.steps {
		out := r.outcomes[i]
		result.StepStatus[s.id] = out.status
		result.stepOrder = append(result.stepOrder, s.id)

		if out.status == StepDone && out.result != nil {
			result.Results[s.id] = out.result
			ordered = append(ordered, out.result)
		}
		if out.err != nil {
			result.Errors = append(result.Errors, StepError{
				StepID:    s.id,
				Message:   out.err.Error(),
				Timestamp: time.Now(),
			})
		}
	}

	result.Scores = scoring.Aggregate(b.BaseScores, ordered)

	switch {
	case budgetExceeded:
		result.Status = StatusFailed
		result.Errors = append(result.Errors, StepError{
			Message:   ErrBudgetExceeded.Error(),
			Timestamp: time.Now(),
		})
	case cancelled:
		result.Status = StatusCancelled
	case requiredFailed:
		result.Status = StatusFailed
	case len(result.Errors) > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusCompleted
	}

	return result
}

// runStep dispatches one step to its capability and races the invocation
// against the per-step timeout and the execution's cancellation signal.
// Whichever resolves first becomes the step's terminal state.
func (o *Orchestrator) runStep(ctx context.Context, executionID uuid.UUID, st step, payload capability.Payload) outcome {
	started := time.Now()
	out := o.invoke(ctx, st, payload)
	out.duration = time.Since(started)

	o.recorder.RecordStep(context.WithoutCancel(ctx), StepEvent{
		ExecutionID:  executionID,
		StepID:       st.id,
		CapabilityID: st.capabilityID,
		Status:       out.status,
		Error:        errMessage(out.err),
		Duration:     out.duration,
		Timestamp:    time.Now(),
	})

	if out.err != nil {
		o.logger.Warn("step terminal",
			"execution_id", executionID,
			"step", st.id,
			"status", out.status,
			"error", out.err,
		)
	} else {
		o.logger.Debug("step terminal",
			"execution_id", executionID,
			"step", st.id,
			"status", out.status,
		)
	}

	return out
}

func (o *Orchestrator) invoke(ctx context.Context, st step, payload capability.Payload) outcome {
	c, ok := o.registry.Get(st.capabilityID)
	if !ok {
		return outcome{
			status: StepFailed,
			err:    fmt.Errorf("%w: %s", capability.ErrCapabilityNotFound, st.capabilityID),
		}
	}
	// A disabled capability fails its step. Workflows that schedule
	// deployment-dependent capabilities mark those steps optional so the run
	// degrades to partial instead of halting.
	if !c.Enabled() {
		return outcome{
			status: StepFailed,
			err:    fmt.Errorf("%w: %s", capability.ErrCapabilityDisabled, st.capabilityID),
		}
	}

	timeout := o.cfg.stepTimeout(st.timeout)
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepPayload := payload
	stepPayload.Config = st.config

	type invocation struct {
		result *capability.Result
		err    error
	}

	ch := make(chan invocation, 1)
	go func() {
		result, err := c.Invoke(stepCtx, stepPayload)
		ch <- invocation{result, err}
	}()

	// stepCtx is the single deadline source: it expires on the per-step
	// timeout and closes on execution cancellation, and a cooperative
	// capability returning stepCtx's error resolves to the same state as the
	// context firing first.
	select {
	case inv := <-ch:
		switch {
		case inv.err == nil:
			return outcome{status: StepDone, result: inv.result}
		case errors.Is(inv.err, context.DeadlineExceeded) && ctx.Err() == nil:
			return outcome{
				status: StepTimedOut,
				err:    fmt.Errorf("%w: %s after %v", ErrStepTimeout, st.id, timeout),
			}
		default:
			return outcome{status: StepFailed, err: inv.err}
		}
	case <-stepCtx.Done():
		if ctx.Err() == nil {
			return outcome{
				status: StepTimedOut,
				err:    fmt.Errorf("%w: %s after %v", ErrStepTimeout, st.id, timeout),
			}
		}
		return outcome{
			status: StepFailed,
			err:    fmt.Errorf("%w: %s", ErrExecutionCancelled, st.id),
		}
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
