package wizard

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/secure-ssid/central-portal/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteRequest writes req to a YAML request file with a descriptive header.
// The file holds passphrases, so it is created readable by the owner only.
func WriteRequest(req *config.WLANRequest, outputPath string) error {
	data, err := config.Marshal(req)
	if err != nil {
		return err
	}

	content := generateHeader(outputPath, time.Now()) + "\n" + string(data)
	if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}
	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string, now time.Time) string {
	return fmt.Sprintf(`# WLAN deployment request
# Generated by: central-portal init
# Generated at: %s
#
# Required environment variables:
#   %s - console API base URL
#   %s - console API token (prompted for when unset)
#
# Usage:
#   central-portal plan -f %s
#   central-portal deploy -f %s
`, now.Format(time.RFC3339), config.EnvBaseURL, config.EnvToken, outputPath, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite asks with a confirm form.
func defaultConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite).
		Run()
	if err != nil {
		return false, err
	}
	return overwrite, nil
}
