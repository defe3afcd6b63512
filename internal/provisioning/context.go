package provisioning

import (
	"context"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// Context wraps all dependencies and state needed by a step executor.
type Context struct {
	context.Context
	RunID    string
	Request  *config.WLANRequest
	State    *State
	Client   central.ResourceClient
	Observer Observer
}

// NewContext creates a new provisioning context for one run.
func NewContext(
	ctx context.Context,
	runID string,
	req *config.WLANRequest,
	state *State,
	client central.ResourceClient,
	observer Observer,
) *Context {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Context{
		Context:  ctx,
		RunID:    runID,
		Request:  req,
		State:    state,
		Client:   client,
		Observer: observer,
	}
}

// Record adds a created resource to the ledger and reports it. Executors
// call it right after each successful creation call, so partially
// completed steps still leave an accurate ledger behind.
func (c *Context) Record(step StepID, typ ResourceType, identifier string) {
	r := CreatedResource{Type: typ, Identifier: identifier}
	c.State.Record(r)
	LogResourceCreated(c.Observer, step, r)
}

// VLANID returns the VLAN the WLAN is placed on: the one created by the
// vlan step when it ran, otherwise the request's VLAN.
func (c *Context) VLANID() int {
	if c.State.VLANID != 0 {
		return c.State.VLANID
	}
	return c.Request.Network.VLANID
}
