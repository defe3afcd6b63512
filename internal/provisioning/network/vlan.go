package network

import (
	"strconv"

	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// VLANExecutor creates the Layer-2 VLAN of a WLAN.
type VLANExecutor struct{}

// NewVLANExecutor creates a new VLAN executor.
func NewVLANExecutor() *VLANExecutor {
	return &VLANExecutor{}
}

// Step implements the provisioning.StepExecutor interface.
func (e *VLANExecutor) Step() provisioning.StepID {
	return provisioning.StepVLAN
}

// Execute implements the provisioning.StepExecutor interface.
func (e *VLANExecutor) Execute(ctx *provisioning.Context) error {
	req := ctx.Request
	vlanID := req.Network.VLANID

	vlan, err := ctx.Client.CreateVLAN(ctx, vlanID, central.VLANOpts{
		Name:        naming.VLANName(req.Name, vlanID),
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	if vlan != nil && vlan.ID != 0 {
		vlanID = vlan.ID
	}

	ctx.State.VLANID = vlanID
	ctx.Record(e.Step(), provisioning.ResourceVLAN, strconv.Itoa(vlanID))
	return nil
}
