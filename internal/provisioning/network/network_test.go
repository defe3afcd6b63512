package network

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
)

func newTestContext(client central.ResourceClient) *provisioning.Context {
	req := &config.WLANRequest{
		Name:        "corp",
		Description: "corporate",
		Scope:       config.GlobalScope(),
		Network:     config.NetworkSettings{VLANID: 50},
		Auth:        config.AuthSettings{Family: config.SecurityOpen},
	}
	state := provisioning.NewState(provisioning.BuildPlan(req))
	return provisioning.NewContext(context.Background(), "run-1", req, state, client, nil)
}

func TestVLANExecutor(t *testing.T) {
	t.Parallel()

	var opts central.VLANOpts
	client := &central.MockClient{
		CreateVLANFunc: func(_ context.Context, vlanID int, o central.VLANOpts) (*central.VLANRef, error) {
			opts = o
			return &central.VLANRef{ID: vlanID, Name: o.Name}, nil
		},
	}
	ctx := newTestContext(client)

	e := NewVLANExecutor()
	assert.Equal(t, provisioning.StepVLAN, e.Step())
	require.NoError(t, e.Execute(ctx))

	assert.Equal(t, "corp_50", opts.Name)
	assert.Equal(t, "corporate", opts.Description)
	assert.Equal(t, 50, ctx.State.VLANID)
	assert.Equal(t, []provisioning.CreatedResource{
		{Type: provisioning.ResourceVLAN, Identifier: "50"},
	}, ctx.State.Created())
}

func TestVLANExecutor_Error(t *testing.T) {
	t.Parallel()

	apiErr := &central.APIError{StatusCode: 409, Message: "vlan exists"}
	client := &central.MockClient{
		CreateVLANFunc: func(context.Context, int, central.VLANOpts) (*central.VLANRef, error) {
			return nil, apiErr
		},
	}
	ctx := newTestContext(client)

	err := NewVLANExecutor().Execute(ctx)
	assert.True(t, errors.Is(err, apiErr))
	assert.Zero(t, ctx.State.VLANID)
	assert.Empty(t, ctx.State.Created())
}

func TestNamedVLANExecutor(t *testing.T) {
	t.Parallel()

	var ranges []string
	client := &central.MockClient{
		CreateNamedVLANFunc: func(_ context.Context, name string, o central.NamedVLANOpts) (*central.NamedVLANRef, error) {
			ranges = o.VLANIDRanges
			return &central.NamedVLANRef{Name: name}, nil
		},
	}
	ctx := newTestContext(client)
	ctx.State.VLANID = 51

	e := NewNamedVLANExecutor()
	assert.Equal(t, provisioning.StepNamedVLAN, e.Step())
	require.NoError(t, e.Execute(ctx))

	assert.Equal(t, []string{"51"}, ranges)
	assert.Equal(t, "corp-vlan-51", ctx.State.NamedVLAN)
	assert.Equal(t, []string{"CreateNamedVLAN(corp-vlan-51)"}, client.Calls())
}

func TestNamedVLANExecutor_FallsBackToRequestVLAN(t *testing.T) {
	t.Parallel()

	client := &central.MockClient{}
	ctx := newTestContext(client)

	require.NoError(t, NewNamedVLANExecutor().Execute(ctx))
	assert.Equal(t, "corp-vlan-50", ctx.State.NamedVLAN)
}

func TestNamedVLANExecutor_Error(t *testing.T) {
	t.Parallel()

	client := &central.MockClient{
		CreateNamedVLANFunc: func(context.Context, string, central.NamedVLANOpts) (*central.NamedVLANRef, error) {
			return nil, errors.New("unavailable")
		},
	}
	ctx := newTestContext(client)

	require.Error(t, NewNamedVLANExecutor().Execute(ctx))
	assert.Empty(t, ctx.State.NamedVLAN)
	assert.Empty(t, ctx.State.Created())
}
