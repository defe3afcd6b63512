package wireless

import (
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/util/naming"
)

// ScopeExecutor binds the WLAN created earlier in the run to its site.
type ScopeExecutor struct{}

// NewScopeExecutor creates a new scope binding executor.
func NewScopeExecutor() *ScopeExecutor {
	return &ScopeExecutor{}
}

// Step implements the provisioning.StepExecutor interface.
func (e *ScopeExecutor) Step() provisioning.StepID {
	return provisioning.StepScopeWLAN
}

// Execute implements the provisioning.StepExecutor interface.
func (e *ScopeExecutor) Execute(ctx *provisioning.Context) error {
	wlan := ctx.State.WLANName
	if wlan == "" {
		wlan = ctx.Request.Name
	}

	binding, err := ctx.Client.CreateScopeBinding(ctx, central.ScopeBinding{
		ScopeID:      ctx.Request.Scope.SiteID,
		Persona:      central.PersonaCampusAP,
		ResourcePath: naming.WLANResourcePath(wlan),
	})
	if err != nil {
		return err
	}

	id := naming.WLANResourcePath(wlan) + "@" + ctx.Request.Scope.SiteID
	if binding != nil && binding.ResourcePath != "" {
		id = binding.ResourcePath + "@" + binding.ScopeID
	}
	ctx.Record(e.Step(), provisioning.ResourceScopeBinding, id)
	return nil
}
