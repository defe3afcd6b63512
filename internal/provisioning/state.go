package provisioning

import (
	"fmt"
	"slices"
)

// State holds the step statuses, the created resource ledger and the
// identifiers produced by completed steps. It is owned by the orchestrator
// for the duration of one run and passed to the executors that need
// results of earlier steps.
type State struct {
	steps   []Step
	created []CreatedResource

	// Network results (populated by the network executors)
	VLANID    int
	NamedVLAN string

	// Wireless results (populated by the wireless executors)
	WLANName string
	SSID     string

	// MPSK results (populated by the mpsk executor)
	MPSKKeys []string
}

// NewState creates a state tracking the given plan. Every step starts Pending.
func NewState(plan []Step) *State {
	steps := make([]Step, len(plan))
	for i, s := range plan {
		steps[i] = Step{ID: s.ID, Label: s.Label, Status: StatusPending}
	}
	return &State{steps: steps}
}

// Steps returns a copy of the steps in plan order.
func (s *State) Steps() []Step {
	return slices.Clone(s.steps)
}

// Created returns a copy of the created resources in creation order.
func (s *State) Created() []CreatedResource {
	return slices.Clone(s.created)
}

// Record appends a created resource to the ledger.
func (s *State) Record(r CreatedResource) {
	s.created = append(s.created, r)
}

// Start moves a step from Pending to InProgress. Every preceding step must
// be terminal, and the only failures allowed before it are non-fatal ones.
func (s *State) Start(id StepID) error {
	idx := s.index(id)
	if idx < 0 {
		return fmt.Errorf("step %q is not part of the plan", id)
	}
	if s.steps[idx].Status != StatusPending {
		return fmt.Errorf("step %q cannot start from status %s", id, s.steps[idx].Status)
	}
	for _, prev := range s.steps[:idx] {
		if !prev.Status.Terminal() {
			return fmt.Errorf("step %q cannot start before step %q has finished", id, prev.ID)
		}
		if prev.Status == StatusFailed && prev.ID.Fatal() {
			return fmt.Errorf("step %q cannot start after step %q failed", id, prev.ID)
		}
	}
	s.steps[idx].Status = StatusInProgress
	return nil
}

// Complete moves an in-progress step to Completed.
func (s *State) Complete(id StepID) {
	s.finish(id, StatusCompleted, "")
}

// Fail moves an in-progress step to Failed with the given message.
func (s *State) Fail(id StepID, message string) {
	s.finish(id, StatusFailed, message)
}

func (s *State) finish(id StepID, status StepStatus, message string) {
	idx := s.index(id)
	if idx < 0 || s.steps[idx].Status != StatusInProgress {
		return
	}
	s.steps[idx].Status = status
	s.steps[idx].ErrorMessage = message
}

// Step returns a copy of the step with the given id.
func (s *State) Step(id StepID) (Step, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Step{}, false
	}
	return s.steps[idx], true
}

func (s *State) index(id StepID) int {
	return slices.IndexFunc(s.steps, func(step Step) bool { return step.ID == id })
}
