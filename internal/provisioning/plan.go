package provisioning

import (
	"fmt"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// BuildPlan computes the ordered steps needed to deploy req. It has no side
// effects and never fails: combinations it does not recognize simply yield
// a shorter plan. Every returned step is Pending.
func BuildPlan(req *config.WLANRequest) []Step {
	if req == nil {
		return nil
	}

	var plan []Step
	add := func(id StepID, label string) {
		plan = append(plan, Step{ID: id, Label: label, Status: StatusPending})
	}

	vlanID := req.Network.VLANID

	// The named VLAN always immediately follows its Layer-2 VLAN.
	if !req.Network.VLANExists {
		add(StepVLAN, fmt.Sprintf("Create VLAN %d", vlanID))
		add(StepNamedVLAN, "Create named VLAN "+naming.NamedVLAN(req.Name, vlanID))
	}

	add(StepWLAN, "Create WLAN "+req.Name)

	// Tunneled WLANs broadcast globally whatever scope was selected.
	if req.Scope.IsSite() && req.Network.ForwardMode == config.ForwardBridge {
		add(StepScopeWLAN, "Assign WLAN to site "+req.Scope.String())
	}

	if req.Auth.Family == config.SecurityMPSK {
		add(StepMPSK, "Register MPSK keys")
	}

	return plan
}

// HasStep reports whether the plan contains the given step.
func HasStep(plan []Step, id StepID) bool {
	for _, s := range plan {
		if s.ID == id {
			return true
		}
	}
	return false
}
