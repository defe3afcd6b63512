package provisioning

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// recordingObserver is a test implementation of Observer that records events.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) Event(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// clientStep is a minimal executor issuing one or more client calls.
type clientStep struct {
	id      StepID
	typ     ResourceType
	execute func(ctx *Context) ([]string, error)
}

func (s clientStep) Step() StepID { return s.id }

func (s clientStep) Execute(ctx *Context) error {
	ids, err := s.execute(ctx)
	for _, id := range ids {
		ctx.Record(s.id, s.typ, id)
	}
	return err
}

// testExecutors drives the mock client the same way the real executors do.
func testExecutors() []StepExecutor {
	return []StepExecutor{
		clientStep{StepVLAN, ResourceVLAN, func(ctx *Context) ([]string, error) {
			ref, err := ctx.Client.CreateVLAN(ctx, ctx.Request.Network.VLANID, central.VLANOpts{})
			if err != nil {
				return nil, err
			}
			ctx.State.VLANID = ref.ID
			return []string{strconv.Itoa(ref.ID)}, nil
		}},
		clientStep{StepNamedVLAN, ResourceNamedVLAN, func(ctx *Context) ([]string, error) {
			name := fmt.Sprintf("%s-vlan-%d", ctx.Request.Name, ctx.VLANID())
			ref, err := ctx.Client.CreateNamedVLAN(ctx, name, central.NamedVLANOpts{})
			if err != nil {
				return nil, err
			}
			ctx.State.NamedVLAN = ref.Name
			return []string{ref.Name}, nil
		}},
		clientStep{StepWLAN, ResourceWLAN, func(ctx *Context) ([]string, error) {
			ref, err := ctx.Client.CreateWLAN(ctx, ctx.Request.Name, central.WLANConfig{}, central.WLANCreateOpts{})
			if err != nil {
				return nil, err
			}
			ctx.State.WLANName = ref.Name
			return []string{ref.Name}, nil
		}},
		clientStep{StepScopeWLAN, ResourceScopeBinding, func(ctx *Context) ([]string, error) {
			ref, err := ctx.Client.CreateScopeBinding(ctx, central.ScopeBinding{
				ScopeID:      ctx.Request.Scope.SiteID,
				ResourcePath: "wlan-ssids/" + ctx.State.WLANName,
			})
			if err != nil {
				return nil, err
			}
			return []string{ref.ResourcePath}, nil
		}},
		clientStep{StepMPSK, ResourceMPSKKey, func(ctx *Context) ([]string, error) {
			var ids []string
			for _, e := range ctx.Request.Auth.MPSK {
				ref, err := ctx.Client.CreateMPSKRegistration(ctx, central.MPSKRegistration{Name: e.Name, Passphrase: e.Passphrase})
				if err != nil {
					return ids, err
				}
				ids = append(ids, ref.ID)
			}
			return ids, nil
		}},
	}
}

func siteRequest() *config.WLANRequest {
	return &config.WLANRequest{
		Name:    "corp",
		SSID:    "Corp",
		Enabled: true,
		Scope:   config.SiteScope("9", "HQ"),
		Network: config.NetworkSettings{VLANID: 50, ForwardMode: config.ForwardBridge},
		Auth:    config.AuthSettings{Family: config.SecurityPersonal, Passphrase: "secretpass"},
	}
}

func mpskRequest() *config.WLANRequest {
	req := siteRequest()
	req.Auth.Family = config.SecurityMPSK
	req.Auth.MPSK = []config.MPSKEntry{
		{Name: "iot", Passphrase: "iotdevices"},
		{Name: "voice", Passphrase: "voicephones"},
	}
	return req
}

func newTestOrchestrator(client central.ResourceClient, obs Observer) *Orchestrator {
	return NewOrchestrator(client,
		WithExecutors(testExecutors()...),
		WithObserver(obs),
		WithRunIDGenerator(func() string { return "run-1" }),
	)
}

func stepIDs(steps []Step) []StepID {
	ids := make([]StepID, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	return ids
}

func statuses(steps []Step) []StepStatus {
	out := make([]StepStatus, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Status)
	}
	return out
}
