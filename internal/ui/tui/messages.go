// Package tui provides a Bubble Tea-based terminal UI for WLAN deployments.
package tui

import "github.com/secure-ssid/central-portal/internal/provisioning"

// EventMsg carries one orchestrator event to the program.
type EventMsg struct {
	Event provisioning.Event
}

// ResultMsg reports the end of a deployment run.
type ResultMsg struct {
	Result *provisioning.Result
	Err    error
}

// CanceledMsg reports that the deployment context was canceled.
type CanceledMsg struct{}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}
