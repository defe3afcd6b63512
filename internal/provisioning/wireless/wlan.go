package wireless

import (
	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// WLANExecutor creates the WLAN profile.
type WLANExecutor struct{}

// NewWLANExecutor creates a new WLAN executor.
func NewWLANExecutor() *WLANExecutor {
	return &WLANExecutor{}
}

// Step implements the provisioning.StepExecutor interface.
func (e *WLANExecutor) Step() provisioning.StepID {
	return provisioning.StepWLAN
}

// Execute implements the provisioning.StepExecutor interface.
func (e *WLANExecutor) Execute(ctx *provisioning.Context) error {
	req := ctx.Request

	var opts central.WLANCreateOpts
	if req.Scope.IsSite() {
		opts.ScopeHint = req.Scope.SiteID
	}

	ref, err := ctx.Client.CreateWLAN(ctx, req.Name, BuildWLANConfig(req, ctx.State), opts)
	if err != nil {
		return err
	}

	ctx.State.WLANName = req.Name
	ctx.State.SSID = req.EffectiveSSID()
	if ref != nil {
		if ref.Name != "" {
			ctx.State.WLANName = ref.Name
		}
		if ref.SSID != "" {
			ctx.State.SSID = ref.SSID
		}
	}

	ctx.Record(e.Step(), provisioning.ResourceWLAN, ctx.State.WLANName)
	return nil
}

// BuildWLANConfig maps a request to the profile attributes sent on creation.
// The VLAN reference is the named VLAN created earlier in the run when
// there is one, otherwise the request's VLAN id.
func BuildWLANConfig(req *config.WLANRequest, state *provisioning.State) central.WLANConfig {
	cfg := central.WLANConfig{
		SSID:        req.EffectiveSSID(),
		Description: req.Description,
		Enabled:     req.Enabled,
		Opmode:      Opmode(req.Auth.Family),
		ForwardMode: ForwardMode(req.Network.ForwardMode),
		VLANIDRange: []string{naming.VLANRange(req.Network.VLANID)},
	}

	if state != nil && state.NamedVLAN != "" {
		cfg.VLANIDRange = []string{state.NamedVLAN}
	}

	if req.Auth.Family.RequiresPassphrase() {
		cfg.Passphrase = req.Auth.Passphrase
	}

	if req.IsTunneled() {
		cfg.GatewayCluster = req.Network.Gateway
	}

	return cfg
}

// Opmode maps a security family to the API opmode.
func Opmode(family config.SecurityFamily) central.Opmode {
	switch family {
	case config.SecurityOpen:
		return central.OpmodeOpen
	case config.SecurityEnterprise:
		return central.OpmodeWPA2Enterprise
	case config.SecurityMPSK:
		return central.OpmodeWPA2MPSK
	default:
		return central.OpmodeWPA2Personal
	}
}

// ForwardMode maps a forwarding mode to the API forward mode.
func ForwardMode(mode config.ForwardMode) string {
	if mode == config.ForwardTunnel {
		return central.ForwardModeTunnel
	}
	return central.ForwardModeBridge
}
