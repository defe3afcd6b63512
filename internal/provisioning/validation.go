package provisioning

import (
	"fmt"

	"github.com/secure-ssid/central-portal/internal/config"
)

// CheckPreconditions runs the checks that must pass before any resource
// call is made. They repeat the parts of form validation the orchestrator
// cannot run without, so requests built outside the wizard are covered too.
func CheckPreconditions(req *config.WLANRequest) error {
	var problems []config.ValidationError
	add := func(field, msg string) {
		problems = append(problems, config.ValidationError{
			Field:    field,
			Message:  msg,
			Severity: config.SeverityError,
		})
	}

	if req == nil {
		add("request", "request is required")
		return &PreconditionError{Problems: problems}
	}

	if err := config.ValidateName(req.Name); err != nil {
		add("name", err.Error())
	}

	if err := config.ValidateVLANID(req.Network.VLANID); err != nil {
		add("network.vlan_id", err.Error())
	}

	if req.Auth.Family.RequiresPassphrase() && req.Auth.Passphrase == "" {
		add("auth.passphrase", fmt.Sprintf("a passphrase is required for %s security", req.Auth.Family))
	}

	if req.Scope.IsSite() && req.Scope.SiteID == "" {
		add("scope.site_id", "a site id is required for site scope")
	}

	if len(problems) > 0 {
		return &PreconditionError{Problems: problems}
	}
	return nil
}
