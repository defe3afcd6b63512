package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

var (
	// errProgramClosed is returned to an attempt the program no longer waits for.
	errProgramClosed = errors.New("deployment view closed before the run started")
	errNoAttempt     = errors.New("no deployment attempt ran")
)

// RunDeployTUI shows the deployment progress list while run executes.
// A failed deployment can be retried from the list; the returned values
// describe the last attempt. RunDeployTUI does not return while an attempt
// is still running, even when the program itself stops early.
func RunDeployTUI(
	ctx context.Context,
	wlanName, scope string,
	plan PlanFunc,
	run RunFunc,
	obs *Observer,
) (*provisioning.Result, error) {
	defer obs.Close()

	attempts := &attemptTracker{run: run}
	m := NewDeployModel(ctx, wlanName, scope, plan, attempts.Run, obs.Events())
	// SIGINT reaches the model as a canceled ctx instead of killing the program.
	p := tea.NewProgram(m, tea.WithoutSignalHandler())

	finalModel, err := p.Run()
	if err != nil {
		if res, runErr := attempts.Settle(); !errors.Is(runErr, errNoAttempt) {
			return res, runErr
		}
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Running {
		if res, runErr := attempts.Settle(); !errors.Is(runErr, errNoAttempt) {
			return res, runErr
		}
		return nil, fmt.Errorf("deployment of WLAN %s interrupted", wlanName)
	}
	return fm.Result, fm.Err
}

// attemptTracker wraps a RunFunc so the caller can wait for the attempt in
// flight after the program has exited.
type attemptTracker struct {
	run RunFunc

	mu      sync.Mutex
	settled bool
	active  chan struct{}
	result  *provisioning.Result
	err     error
	ran     bool
}

// Run starts one attempt unless the tracker has already been settled.
func (t *attemptTracker) Run(ctx context.Context) (*provisioning.Result, error) {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return nil, errProgramClosed
	}
	done := make(chan struct{})
	t.active = done
	t.mu.Unlock()

	res, err := t.run(ctx)

	t.mu.Lock()
	t.result, t.err, t.ran = res, err, true
	t.mu.Unlock()
	close(done)
	return res, err
}

// Settle stops new attempts from starting and waits for the one in flight.
// It returns the outcome of the last attempt, or errNoAttempt if none ran.
func (t *attemptTracker) Settle() (*provisioning.Result, error) {
	t.mu.Lock()
	t.settled = true
	active := t.active
	t.mu.Unlock()

	if active != nil {
		<-active
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ran {
		return nil, errNoAttempt
	}
	return t.result, t.err
}
