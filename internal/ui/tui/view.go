package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderSteps(&b, m)

	if len(m.Notes) > 0 {
		renderRollback(&b, m)
	}

	if m.Failed() {
		renderAlert(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("central-portal: %s", m.WLANName)
	if m.Scope != "" {
		title += fmt.Sprintf(" (%s)", m.Scope)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Running:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Deploying")
		if m.Attempts > 1 {
			status += subtitleStyle.Render(fmt.Sprintf(" (attempt %d)", m.Attempts))
		}
	case m.Failed():
		status += failedStyle.Render("Failed")
	case m.Result != nil && m.Result.Degraded():
		status += warningStyle.Render("Deployed with warnings")
	case m.Result != nil:
		status += readyStyle.Render("Deployed")
	default:
		status += dimStyle.Render("Closed")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m.Steps)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n", bar, int(progress*100))
}

func renderSteps(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")

	for _, step := range m.Steps {
		icon, style := stepIcon(step, m.SpinnerFrame)
		line := fmt.Sprintf("    %s %s", style(icon), style(step.Label))
		if step.Status == provisioning.StatusFailed && step.ErrorMessage != "" {
			line += "  " + dimStyle.Render(step.ErrorMessage)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderRollback(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Rollback"))
	b.WriteString("\n")

	for _, note := range m.Notes {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(note))
	}
}

func renderAlert(b *strings.Builder, m Model) {
	msg := m.Err.Error()
	if m.Result != nil && m.Result.Message != "" {
		msg = m.Result.Message
	}
	b.WriteString(alertStyle.Render(failedStyle.Render(crossMark+" "+msg) + "\n" +
		dimStyle.Render("Press r to try again or q to close.")))
	b.WriteString("\n")
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	if m.Result != nil && !m.Running {
		elapsed = formatDuration(m.Result.Duration())
	}

	keys := "q: close"
	switch {
	case m.Running && m.Closing:
		keys = "closing once the deployment settles"
	case m.Running:
		keys = "q: close when finished"
	case m.canRetry():
		keys = "r: try again  |  q: close"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  %s", elapsed, keys)))
	b.WriteString("\n")
}

// Helper functions

func stepIcon(step provisioning.Step, frame int) (string, styleFunc) {
	switch step.Status {
	case provisioning.StatusCompleted:
		return checkMark, sf(readyStyle)
	case provisioning.StatusFailed:
		if !step.ID.Fatal() {
			return warnMark, sf(warningStyle)
		}
		return crossMark, sf(failedStyle)
	case provisioning.StatusInProgress:
		return currentSpinner(frame), sf(activeStyle)
	default:
		return pending, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// calculateProgress returns the share of steps that reached a terminal status.
func calculateProgress(steps []provisioning.Step) float64 {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Status.Terminal() {
			done++
		}
	}
	return float64(done) / float64(len(steps))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
