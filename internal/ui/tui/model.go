package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

// RunFunc performs one deployment run.
type RunFunc func(ctx context.Context) (*provisioning.Result, error)

// PlanFunc returns the steps of a fresh deployment plan.
type PlanFunc func() []provisioning.Step

// Model is the Bubble Tea model of the deployment progress list.
type Model struct {
	// Deployment info
	WLANName string
	Scope    string

	// Progress of the current attempt
	Steps    []provisioning.Step
	Notes    []string
	Running  bool
	Attempts int

	// Outcome of the last finished attempt
	Result *provisioning.Result
	Err    error

	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Closed bool
	// Closing is set when the user asked to close while a run was active.
	// The program quits once that run has settled.
	Closing bool

	ctx    context.Context
	run    RunFunc
	plan   PlanFunc
	events <-chan provisioning.Event

	// currentRun is the id of the attempt shown; staleRuns holds the ids of
	// attempts replaced by Try Again.
	currentRun string
	staleRuns  map[string]bool
}

// NewDeployModel creates a model that starts its first attempt on Init.
func NewDeployModel(ctx context.Context, wlanName, scope string, plan PlanFunc, run RunFunc, events <-chan provisioning.Event) Model {
	return Model{
		WLANName:  wlanName,
		Scope:     scope,
		Steps:     plan(),
		Running:   true,
		Attempts:  1,
		StartTime: time.Now(),
		ctx:       ctx,
		run:       run,
		plan:      plan,
		events:    events,
		staleRuns: make(map[string]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runCmd(), waitForEvent(m.events), waitForCancel(m.ctx), tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m.close()
		case "r":
			if !m.canRetry() {
				return m, nil
			}
			m.retry()
			return m, m.runCmd()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case CanceledMsg:
		return m.close()

	case EventMsg:
		m.applyEvent(msg.Event)
		return m, waitForEvent(m.events)

	case ResultMsg:
		m.Running = false
		m.Result = msg.Result
		m.Err = msg.Err
		if msg.Result != nil && len(msg.Result.Steps) > 0 {
			m.Steps = msg.Result.Steps
		}
		if m.Err == nil || m.Closing {
			m.Closed = m.Closing
			return m, tea.Quit
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()
	}

	return m, nil
}

// close quits at once when no run is active. Otherwise the active run is
// left to finish or roll back, and the program quits on its result.
func (m Model) close() (tea.Model, tea.Cmd) {
	if m.Running {
		m.Closing = true
		return m, nil
	}
	m.Closed = true
	return m, tea.Quit
}

// Failed reports whether the last finished attempt failed.
func (m Model) Failed() bool {
	return !m.Running && m.Err != nil
}

func (m Model) canRetry() bool {
	if !m.Failed() {
		return false
	}
	// A concurrent run cannot be retried; it is still going.
	return !errors.Is(m.Err, provisioning.ErrRunInProgress)
}

// retry resets the progress list to a fresh plan for a full re-run.
func (m *Model) retry() {
	if m.Result != nil && m.Result.RunID != "" {
		m.staleRuns[m.Result.RunID] = true
	}
	if m.currentRun != "" {
		m.staleRuns[m.currentRun] = true
	}
	m.currentRun = ""
	m.Steps = m.plan()
	m.Notes = nil
	m.Result = nil
	m.Err = nil
	m.Running = true
	m.Attempts++
	m.StartTime = time.Now()
}

func (m *Model) applyEvent(e provisioning.Event) {
	if e.RunID != "" {
		if m.staleRuns[e.RunID] {
			return
		}
		if e.Type == provisioning.EventRunStarted {
			m.currentRun = e.RunID
		}
		if m.currentRun != "" && e.RunID != m.currentRun {
			return
		}
	}

	switch e.Type {
	case provisioning.EventStepStarted, provisioning.EventStepCompleted, provisioning.EventStepFailed:
		for i := range m.Steps {
			if m.Steps[i].ID == e.Step {
				m.Steps[i].Status = e.Status
				m.Steps[i].ErrorMessage = e.Error
			}
		}
	case provisioning.EventResourceDeleted, provisioning.EventCompensationFailed:
		m.Notes = append(m.Notes, noteFor(e))
	}
}

func noteFor(e provisioning.Event) string {
	if e.Error != "" {
		return e.Message + ": " + e.Error
	}
	return e.Message
}

func (m Model) runCmd() tea.Cmd {
	ctx, run := m.ctx, m.run
	return func() tea.Msg {
		res, err := run(ctx)
		return ResultMsg{Result: res, Err: err}
	}
}

func waitForEvent(events <-chan provisioning.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		return EventMsg{Event: <-events}
	}
}

// waitForCancel reports the cancellation of ctx, e.g. on SIGINT.
func waitForCancel(ctx context.Context) tea.Cmd {
	if ctx == nil || ctx.Done() == nil {
		return nil
	}
	return func() tea.Msg {
		<-ctx.Done()
		return CanceledMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
