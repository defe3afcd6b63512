package handlers

import (
	"fmt"
	"os"

	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/report"
)

// Plan prints the steps a deployment of the request file would run.
// It never contacts the console API.
func Plan(file, output string) error {
	format, err := report.ParseFormat(output)
	if err != nil {
		return err
	}

	req, err := loadRequest(file)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}
	if err := provisioning.CheckPreconditions(req); err != nil {
		return err
	}

	return report.RenderPlan(os.Stdout, req.Name, provisioning.BuildPlan(req), format)
}
