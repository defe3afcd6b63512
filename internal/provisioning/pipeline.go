package provisioning

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// Result is the outcome of one orchestration run. It is returned for every
// run the orchestrator starts, successful or not. A Run rejected with
// ErrRunInProgress returns no Result.
type Result struct {
	RunID string
	State RunState
	// Message is the terminal message: a summary on success, the precondition
	// or fatal step error on failure.
	Message string
	Steps   []Step
	// Created lists every resource whose creation call succeeded, in order.
	Created []CreatedResource
	// RolledBack lists the resources deleted by compensation, in deletion order.
	RolledBack []CreatedResource
	// Orphaned lists the resources compensation failed to delete.
	Orphaned   []CreatedResource
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the run finished without a fatal failure.
func (r *Result) Succeeded() bool {
	return r.State == RunSucceeded
}

// Degraded reports whether a successful run had non-fatal step failures.
func (r *Result) Degraded() bool {
	if !r.Succeeded() {
		return false
	}
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Attempted returns the steps that left Pending.
func (r *Result) Attempted() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Status != StatusPending {
			out = append(out, s)
		}
	}
	return out
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Orchestrator executes deployment plans against the resource client,
// one step at a time, compensating on fatal failures. A single
// Orchestrator runs at most one deployment at a time.
type Orchestrator struct {
	client    central.ResourceClient
	executors map[StepID]StepExecutor
	observer  Observer
	logger    logr.Logger
	now       func() time.Time
	newRunID  func() string

	running atomic.Bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithExecutors registers step executors, replacing any registered for the same step.
func WithExecutors(executors ...StepExecutor) Option {
	return func(o *Orchestrator) {
		for _, e := range executors {
			o.executors[e.Step()] = e
		}
	}
}

// WithObserver sets the observer receiving run events.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLogger sets the logger used for diagnostics not covered by events.
func WithLogger(l logr.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithRunIDGenerator overrides how run ids are generated (useful for testing).
func WithRunIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) {
		o.newRunID = gen
	}
}

// NewOrchestrator creates an orchestrator driving the given client.
func NewOrchestrator(client central.ResourceClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:    client,
		executors: make(map[StepID]StepExecutor),
		observer:  NopObserver{},
		logger:    logr.Discard(),
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run deploys req. The request is copied before use, so later changes by
// the caller do not affect the run. Run returns a Result together with the
// precondition or fatal step error that failed the run, or a nil Result and
// ErrRunInProgress while another run is active; non-fatal step
// failures and compensation failures are only reported through events and
// the Result.
//
// ctx is handed to the resource client; the orchestrator never cancels a
// run on its own. Compensation is detached from ctx's cancellation.
func (o *Orchestrator) Run(ctx context.Context, req *config.WLANRequest) (*Result, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer o.running.Store(false)

	result := &Result{
		RunID:     o.newRunID(),
		State:     RunNotStarted,
		StartedAt: o.now(),
	}
	observer := runObserver{next: o.observer, runID: result.RunID, now: o.now}
	logger := o.logger.WithValues("run", result.RunID)

	fail := func(state *State, err error) (*Result, error) {
		result.State = RunFailed
		result.Message = err.Error()
		if state != nil {
			result.Steps = state.Steps()
			result.Created = state.Created()
		}
		result.FinishedAt = o.now()
		LogRunFailed(observer, err)
		return result, err
	}

	if err := CheckPreconditions(req); err != nil {
		return fail(nil, err)
	}
	request := req.Clone()

	plan := BuildPlan(&request)
	for _, step := range plan {
		if _, ok := o.executors[step.ID]; !ok {
			return fail(nil, fmt.Errorf("no executor registered for step %q", step.ID))
		}
	}

	state := NewState(plan)
	pctx := NewContext(ctx, result.RunID, &request, state, o.client, observer)

	result.State = RunRunning
	result.Steps = state.Steps()
	LogRunStarted(observer, request.Name, len(plan))

	for _, planned := range plan {
		if err := state.Start(planned.ID); err != nil {
			// Only reachable if the plan or state tracking is inconsistent.
			return fail(state, err)
		}
		step, _ := state.Step(planned.ID)
		LogStepStarted(observer, step)

		stepStart := o.now()
		err := o.executors[planned.ID].Execute(pctx)
		if err == nil {
			state.Complete(planned.ID)
			step, _ = state.Step(planned.ID)
			LogStepCompleted(observer, step, o.now().Sub(stepStart))
			continue
		}

		stepErr := &StepError{Step: planned.ID, Err: err}
		state.Fail(planned.ID, central.Message(err))
		step, _ = state.Step(planned.ID)
		LogStepFailed(observer, step, step.ErrorMessage)

		if !planned.ID.Fatal() {
			logger.V(1).Info("Continuing after non-fatal step failure", "step", string(planned.ID), "error", err.Error())
			continue
		}

		result.RolledBack, result.Orphaned = o.compensate(ctx, observer, state.Created())
		return fail(state, stepErr)
	}

	result.State = RunSucceeded
	result.Steps = state.Steps()
	result.Created = state.Created()
	result.FinishedAt = o.now()
	result.Message = successMessage(&request, result)
	LogRunSucceeded(observer, result.Message)
	return result, nil
}

// Running reports whether a run is in progress.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

func successMessage(req *config.WLANRequest, r *Result) string {
	failed := 0
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			failed++
		}
	}
	if failed == 0 {
		return fmt.Sprintf("WLAN %s deployed", req.Name)
	}
	return fmt.Sprintf("WLAN %s deployed with %d failed optional step(s)", req.Name, failed)
}
