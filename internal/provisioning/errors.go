package provisioning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// ErrRunInProgress is returned when Run is called while another run of the
// same orchestrator has not finished.
var ErrRunInProgress = errors.New("a deployment is already running")

// PreconditionError reports request problems found before any step started.
type PreconditionError struct {
	Problems []config.ValidationError
}

func (e *PreconditionError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Field+": "+p.Message)
	}
	return "invalid deployment request: " + strings.Join(msgs, "; ")
}

// StepError is the failure of a single step.
type StepError struct {
	Step StepID
	Err  error
}

// Error returns the user-facing message, e.g. "Failed to create WLAN: quota exceeded".
func (e *StepError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Step.action(), central.Message(e.Err))
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is a precondition failure.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
