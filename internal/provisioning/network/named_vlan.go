package network

import (
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// NamedVLANExecutor creates the named VLAN profile referencing the WLAN's VLAN.
type NamedVLANExecutor struct{}

// NewNamedVLANExecutor creates a new named VLAN executor.
func NewNamedVLANExecutor() *NamedVLANExecutor {
	return &NamedVLANExecutor{}
}

// Step implements the provisioning.StepExecutor interface.
func (e *NamedVLANExecutor) Step() provisioning.StepID {
	return provisioning.StepNamedVLAN
}

// Execute implements the provisioning.StepExecutor interface.
func (e *NamedVLANExecutor) Execute(ctx *provisioning.Context) error {
	vlanID := ctx.VLANID()
	name := naming.NamedVLAN(ctx.Request.Name, vlanID)

	ref, err := ctx.Client.CreateNamedVLAN(ctx, name, central.NamedVLANOpts{
		VLANIDRanges: []string{naming.VLANRange(vlanID)},
	})
	if err != nil {
		return err
	}
	if ref != nil && ref.Name != "" {
		name = ref.Name
	}

	ctx.State.NamedVLAN = name
	ctx.Record(e.Step(), provisioning.ResourceNamedVLAN, name)
	return nil
}
