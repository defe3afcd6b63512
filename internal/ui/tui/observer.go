package tui

import (
	"sync"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

// Observer forwards orchestrator events to the TUI. Events sent after
// Close are dropped, so a run outliving the program never blocks.
type Observer struct {
	events chan provisioning.Event
	done   chan struct{}
	once   sync.Once
}

// NewObserver creates an observer with a small event buffer.
func NewObserver() *Observer {
	return &Observer{
		events: make(chan provisioning.Event, 32),
		done:   make(chan struct{}),
	}
}

// Event implements provisioning.Observer.
func (o *Observer) Event(e provisioning.Event) {
	select {
	case o.events <- e:
	case <-o.done:
	}
}

// Close stops event delivery.
func (o *Observer) Close() {
	o.once.Do(func() { close(o.done) })
}

// Events returns the channel the program reads from.
func (o *Observer) Events() <-chan provisioning.Event {
	return o.events
}
