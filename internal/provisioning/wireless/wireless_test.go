package wireless

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
)

func siteRequest() *config.WLANRequest {
	return &config.WLANRequest{
		Name:        "corp",
		SSID:        "Corp",
		Description: "corporate",
		Enabled:     true,
		Scope:       config.SiteScope("9", "HQ"),
		Network:     config.NetworkSettings{VLANID: 50, ForwardMode: config.ForwardBridge},
		Auth:        config.AuthSettings{Family: config.SecurityPersonal, Passphrase: "secretpass"},
	}
}

func newTestContext(req *config.WLANRequest, client central.ResourceClient) *provisioning.Context {
	state := provisioning.NewState(provisioning.BuildPlan(req))
	return provisioning.NewContext(context.Background(), "run-1", req, state, client, nil)
}

func TestBuildWLANConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.WLANRequest)
		state  *provisioning.State
		want   central.WLANConfig
	}{
		{
			name:   "personal bridged on VLAN id",
			modify: func(*config.WLANRequest) {},
			want: central.WLANConfig{
				SSID: "Corp", Description: "corporate", Enabled: true,
				Opmode: central.OpmodeWPA2Personal, Passphrase: "secretpass",
				ForwardMode: central.ForwardModeBridge, VLANIDRange: []string{"50"},
			},
		},
		{
			name:   "named VLAN preferred",
			modify: func(*config.WLANRequest) {},
			state:  &provisioning.State{NamedVLAN: "corp-vlan-50"},
			want: central.WLANConfig{
				SSID: "Corp", Description: "corporate", Enabled: true,
				Opmode: central.OpmodeWPA2Personal, Passphrase: "secretpass",
				ForwardMode: central.ForwardModeBridge, VLANIDRange: []string{"corp-vlan-50"},
			},
		},
		{
			name: "enterprise tunneled drops passphrase",
			modify: func(r *config.WLANRequest) {
				r.Auth = config.AuthSettings{Family: config.SecurityEnterprise, Passphrase: "ignored1"}
				r.Network.ForwardMode = config.ForwardTunnel
				r.Network.Gateway = "gw-cluster"
			},
			want: central.WLANConfig{
				SSID: "Corp", Description: "corporate", Enabled: true,
				Opmode:      central.OpmodeWPA2Enterprise,
				ForwardMode: central.ForwardModeTunnel, VLANIDRange: []string{"50"},
				GatewayCluster: "gw-cluster",
			},
		},
		{
			name: "gateway ignored when bridged",
			modify: func(r *config.WLANRequest) {
				r.Auth = config.AuthSettings{Family: config.SecurityOpen}
				r.Network.Gateway = "gw-cluster"
				r.SSID = ""
			},
			want: central.WLANConfig{
				SSID: "corp", Description: "corporate", Enabled: true,
				Opmode:      central.OpmodeOpen,
				ForwardMode: central.ForwardModeBridge, VLANIDRange: []string{"50"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := siteRequest()
			tt.modify(req)
			assert.Equal(t, tt.want, BuildWLANConfig(req, tt.state))
		})
	}
}

func TestOpmode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, central.OpmodeOpen, Opmode(config.SecurityOpen))
	assert.Equal(t, central.OpmodeWPA2Personal, Opmode(config.SecurityPersonal))
	assert.Equal(t, central.OpmodeWPA2Enterprise, Opmode(config.SecurityEnterprise))
	assert.Equal(t, central.OpmodeWPA2MPSK, Opmode(config.SecurityMPSK))
}

func TestForwardMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, central.ForwardModeBridge, ForwardMode(config.ForwardBridge))
	assert.Equal(t, central.ForwardModeTunnel, ForwardMode(config.ForwardTunnel))
	assert.Equal(t, central.ForwardModeBridge, ForwardMode(""))
}

func TestWLANExecutor(t *testing.T) {
	t.Parallel()

	var hint string
	client := &central.MockClient{
		CreateWLANFunc: func(_ context.Context, name string, cfg central.WLANConfig, opts central.WLANCreateOpts) (*central.WLANRef, error) {
			hint = opts.ScopeHint
			return &central.WLANRef{Name: name, SSID: cfg.SSID}, nil
		},
	}
	ctx := newTestContext(siteRequest(), client)

	e := NewWLANExecutor()
	assert.Equal(t, provisioning.StepWLAN, e.Step())
	require.NoError(t, e.Execute(ctx))

	assert.Equal(t, "9", hint)
	assert.Equal(t, "corp", ctx.State.WLANName)
	assert.Equal(t, "Corp", ctx.State.SSID)
	assert.Equal(t, []provisioning.CreatedResource{
		{Type: provisioning.ResourceWLAN, Identifier: "corp"},
	}, ctx.State.Created())
}

func TestWLANExecutor_GlobalScopeHasNoHint(t *testing.T) {
	t.Parallel()

	req := siteRequest()
	req.Scope = config.GlobalScope()
	hint := "unset"
	client := &central.MockClient{
		CreateWLANFunc: func(_ context.Context, name string, _ central.WLANConfig, opts central.WLANCreateOpts) (*central.WLANRef, error) {
			hint = opts.ScopeHint
			return &central.WLANRef{Name: name}, nil
		},
	}

	require.NoError(t, NewWLANExecutor().Execute(newTestContext(req, client)))
	assert.Empty(t, hint)
}

func TestWLANExecutor_Error(t *testing.T) {
	t.Parallel()

	client := &central.MockClient{
		CreateWLANFunc: func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
			return nil, &central.APIError{StatusCode: 403, Message: "quota exceeded"}
		},
	}
	ctx := newTestContext(siteRequest(), client)

	err := NewWLANExecutor().Execute(ctx)
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Empty(t, ctx.State.WLANName)
	assert.Empty(t, ctx.State.Created())
}

func TestScopeExecutor(t *testing.T) {
	t.Parallel()

	var binding central.ScopeBinding
	client := &central.MockClient{
		CreateScopeBindingFunc: func(_ context.Context, b central.ScopeBinding) (*central.BindingRef, error) {
			binding = b
			return &central.BindingRef{ScopeID: b.ScopeID, Persona: b.Persona, ResourcePath: b.ResourcePath}, nil
		},
	}
	ctx := newTestContext(siteRequest(), client)
	ctx.State.WLANName = "corp"

	e := NewScopeExecutor()
	assert.Equal(t, provisioning.StepScopeWLAN, e.Step())
	require.NoError(t, e.Execute(ctx))

	assert.Equal(t, central.ScopeBinding{
		ScopeID:      "9",
		Persona:      central.PersonaCampusAP,
		ResourcePath: "wlan-ssids/corp",
	}, binding)
	assert.Equal(t, []provisioning.CreatedResource{
		{Type: provisioning.ResourceScopeBinding, Identifier: "wlan-ssids/corp@9"},
	}, ctx.State.Created())
}
