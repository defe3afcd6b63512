// Package commands defines the CLI command structure using Cobra.
//
// Each command is defined in its own file with flag definitions and help text.
// Command execution is delegated to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Root returns the root command for the central-portal CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "central-portal",
		Short: "Deploy WLANs through the network management console",
		Long: `Deploy WLANs through the network management console.

A deployment creates the VLAN, the WLAN profile, the site assignment and
the MPSK keys of a WLAN in order. When a required step fails, everything
created so far is deleted again.

Environment variables:
  CENTRAL_BASE_URL  Console API base URL (required)
  CENTRAL_TOKEN     API token (prompted for when unset on a terminal)`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			handlers.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		Init(),
		Deploy(),
		Plan(),
		Sites(),
		Report(),
		Version(),
		Completion(),
	)

	return cmd
}
