package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Init returns the command for interactively creating a WLAN request file.
//
// Flags:
//
//	--output, -o: Path to output file (default "wlan.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a WLAN request file",
		Long: `Interactively create a WLAN request file.

The wizard asks for:

  - WLAN name, SSID and description
  - Scope (global or a single site)
  - VLAN and forwarding mode
  - Security (open, personal, enterprise or MPSK) and passphrase
  - MPSK keys with their VLAN and user role

When the console API is reachable, sites and roles are offered from the
console and the VLAN is checked for existence. Otherwise the wizard
works offline.

Deploy the result with 'central-portal deploy -f <file>'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "wlan.yaml", "Output file path")

	return cmd
}
