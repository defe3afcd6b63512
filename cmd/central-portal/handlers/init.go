package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/config/wizard"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before an existing file is replaced.
	confirmOverwrite = wizard.ConfirmOverwrite

	// saveRequest writes the request to a file.
	saveRequest = wizard.WriteRequest
)

// errInitAborted is returned when the user keeps an existing request file.
var errInitAborted = errors.New("init aborted, existing file kept")

// Init runs the WLAN wizard and writes the result to a file.
// Without console access the wizard runs offline.
func Init(ctx context.Context, outputPath string) error {
	logger := newLogger()
	ctx = logr.NewContext(ctx, logger)

	if !stdinIsTerminal() {
		return fmt.Errorf("init needs an interactive terminal")
	}
	if fileExists(outputPath) {
		overwrite, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !overwrite {
			return errInitAborted
		}
	}

	var lookups central.LookupService
	if client, err := connect(ctx); err != nil {
		logger.Info("Console API not available, continuing offline", "reason", err.Error())
	} else {
		lookups = client
	}

	printWelcome()

	req, err := runWizard(ctx, lookups)
	if err != nil {
		return err
	}

	if err := saveRequest(req, outputPath); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}

	printInitSuccess(outputPath, req)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("central-portal - WLAN deployment")
	fmt.Println("================================")
	fmt.Println()
	fmt.Println("This wizard creates a WLAN request file.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, req *config.WLANRequest) {
	fmt.Println()
	fmt.Println("Request saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("WLAN Summary")
	fmt.Println("------------")
	fmt.Printf("  Name:     %s\n", req.Name)
	fmt.Printf("  SSID:     %s\n", req.EffectiveSSID())
	fmt.Printf("  Scope:    %s\n", req.Scope.String())
	vlan := fmt.Sprintf("%d", req.Network.VLANID)
	if req.Network.VLANExists {
		vlan += " (existing)"
	}
	fmt.Printf("  VLAN:     %s\n", vlan)
	fmt.Printf("  Forward:  %s\n", req.Network.ForwardMode)
	fmt.Printf("  Security: %s\n", req.Auth.Family)
	if n := len(req.Auth.MPSK); n > 0 {
		fmt.Printf("  MPSK keys: %d\n", n)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set the console API access:")
	fmt.Printf("     export %s=<url> %s=<token>\n", config.EnvBaseURL, config.EnvToken)
	fmt.Println()
	fmt.Println("  2. Review the plan:")
	fmt.Printf("     central-portal plan -f %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy the WLAN:")
	fmt.Printf("     central-portal deploy -f %s\n", outputPath)
	fmt.Println()
}
