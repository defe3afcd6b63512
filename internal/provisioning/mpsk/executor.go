package mpsk

import (
	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// Executor registers every MPSK key of the WLAN in one step.
type Executor struct{}

// NewExecutor creates a new MPSK executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Step implements the provisioning.StepExecutor interface.
func (e *Executor) Step() provisioning.StepID {
	return provisioning.StepMPSK
}

// Execute implements the provisioning.StepExecutor interface. Keys are
// registered in order and the step stops at the first failing key; keys
// registered before it stay recorded.
func (e *Executor) Execute(ctx *provisioning.Context) error {
	wlan := ctx.State.WLANName
	if wlan == "" {
		wlan = ctx.Request.Name
	}

	for _, reg := range Registrations(ctx.Request, wlan, ctx.VLANID()) {
		ref, err := ctx.Client.CreateMPSKRegistration(ctx, reg)
		if err != nil {
			return err
		}

		id := reg.Name
		if ref != nil && ref.ID != "" {
			id = ref.ID
		}
		ctx.State.MPSKKeys = append(ctx.State.MPSKKeys, reg.Name)
		ctx.Record(e.Step(), provisioning.ResourceMPSKKey, id)
	}
	return nil
}

// Registrations returns the keys to register for req: the default key when
// the WLAN passphrase is set, followed by the named entries. Entries
// without their own VLAN use vlanID.
func Registrations(req *config.WLANRequest, wlan string, vlanID int) []central.MPSKRegistration {
	var regs []central.MPSKRegistration
	if req.Auth.Passphrase != "" {
		regs = append(regs, central.MPSKRegistration{
			Name:       naming.DefaultMPSKKey(wlan),
			Passphrase: req.Auth.Passphrase,
			VLAN:       vlanID,
		})
	}
	for _, entry := range req.Auth.MPSK {
		vlan := entry.VLAN
		if vlan == 0 {
			vlan = vlanID
		}
		regs = append(regs, central.MPSKRegistration{
			Name:       naming.MPSKKey(wlan, entry.Name),
			Passphrase: entry.Passphrase,
			VLAN:       vlan,
			Role:       entry.Role,
		})
	}
	return regs
}
