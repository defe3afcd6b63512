package provisioning

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives the structured events of a deployment run.
// Events are delivered synchronously from the orchestrator's goroutine.
type Observer interface {
	Event(event Event)
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType  // Type of event
	RunID     string     // Run the event belongs to
	Step      StepID     // Step id if applicable
	Label     string     // Step label if applicable
	Status    StepStatus // Step status after a step transition
	Message   string     // Human-readable message
	Error     string     // Error text of failure events
	Resource  *CreatedResource
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventRunStarted indicates a run has started executing its plan.
	EventRunStarted EventType = "run.started"
	// EventRunSucceeded indicates a run finished without a fatal failure.
	EventRunSucceeded EventType = "run.succeeded"
	// EventRunFailed indicates a run failed a precondition or a fatal step.
	EventRunFailed EventType = "run.failed"

	// EventStepStarted indicates a step moved to InProgress.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step moved to Completed.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a step moved to Failed.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreated indicates a creation call succeeded.
	EventResourceCreated EventType = "resource.created"
	// EventResourceDeleting indicates a compensating delete is being issued.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a compensating delete succeeded.
	EventResourceDeleted EventType = "resource.deleted"
	// EventCompensationFailed indicates a compensating delete failed.
	EventCompensationFailed EventType = "compensation.failed"
)

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Event implements Observer.
func (f ObserverFunc) Event(e Event) { f(e) }

// NopObserver discards all events.
type NopObserver struct{}

// Event implements Observer.
func (NopObserver) Event(Event) {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

// Event implements Observer.
func (m MultiObserver) Event(e Event) {
	for _, o := range m {
		if o != nil {
			o.Event(e)
		}
	}
}

// runObserver stamps events with the run id and a timestamp.
type runObserver struct {
	next  Observer
	runID string
	now   func() time.Time
}

func (o runObserver) Event(e Event) {
	if e.RunID == "" {
		e.RunID = o.runID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = o.now()
	}
	o.next.Event(e)
}

// LogObserver implements Observer using a logr.Logger.
type LogObserver struct {
	logger logr.Logger
}

// NewLogObserver creates an observer that logs every event.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Event implements Observer.
func (o *LogObserver) Event(e Event) {
	kv := []any{"event", string(e.Type)}
	if e.RunID != "" {
		kv = append(kv, "run", e.RunID)
	}
	if e.Step != "" {
		kv = append(kv, "step", string(e.Step))
	}
	if e.Resource != nil {
		kv = append(kv, "resource", e.Resource.String())
	}

	switch e.Type {
	case EventStepFailed, EventCompensationFailed, EventRunFailed:
		o.logger.Error(errors.New(e.Error), e.Message, kv...)
	case EventResourceCreated, EventResourceDeleting:
		o.logger.V(1).Info(e.Message, kv...)
	default:
		o.logger.Info(e.Message, kv...)
	}
}

// Helper functions for common events

// LogRunStarted logs the start of a run.
func LogRunStarted(observer Observer, wlan string, steps int) {
	observer.Event(Event{
		Type:    EventRunStarted,
		Message: fmt.Sprintf("Deploying WLAN %s (%d steps)", wlan, steps),
	})
}

// LogRunSucceeded logs the successful end of a run.
func LogRunSucceeded(observer Observer, message string) {
	observer.Event(Event{
		Type:    EventRunSucceeded,
		Message: message,
	})
}

// LogRunFailed logs the failed end of a run.
func LogRunFailed(observer Observer, err error) {
	observer.Event(Event{
		Type:    EventRunFailed,
		Message: "Deployment failed",
		Error:   err.Error(),
	})
}

// LogStepStarted logs a step transition to InProgress.
func LogStepStarted(observer Observer, step Step) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Step:    step.ID,
		Label:   step.Label,
		Status:  StatusInProgress,
		Message: step.Label,
	})
}

// LogStepCompleted logs a step transition to Completed.
func LogStepCompleted(observer Observer, step Step, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step.ID,
		Label:   step.Label,
		Status:  StatusCompleted,
		Message: fmt.Sprintf("%s completed in %v", step.Label, duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step transition to Failed.
func LogStepFailed(observer Observer, step Step, errMessage string) {
	msg := step.Label + " failed"
	if !step.ID.Fatal() {
		msg += ", continuing"
	}
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step.ID,
		Label:   step.Label,
		Status:  StatusFailed,
		Message: msg,
		Error:   errMessage,
	})
}

// LogResourceCreated logs a successful creation call.
func LogResourceCreated(observer Observer, step StepID, r CreatedResource) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Resource: &r,
		Message:  fmt.Sprintf("%s %s created", r.Type, r.Identifier),
	})
}

// LogResourceDeleting logs a compensating delete.
func LogResourceDeleting(observer Observer, r CreatedResource) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Resource: &r,
		Message:  fmt.Sprintf("deleting %s %s", r.Type, r.Identifier),
	})
}

// LogResourceDeleted logs a successful compensating delete.
func LogResourceDeleted(observer Observer, r CreatedResource) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Resource: &r,
		Message:  fmt.Sprintf("%s %s deleted", r.Type, r.Identifier),
	})
}

// LogCompensationFailed logs a failed compensating delete.
func LogCompensationFailed(observer Observer, r CreatedResource, err error) {
	observer.Event(Event{
		Type:     EventCompensationFailed,
		Resource: &r,
		Message:  fmt.Sprintf("could not delete %s %s, remove it manually", r.Type, r.Identifier),
		Error:    err.Error(),
	})
}
