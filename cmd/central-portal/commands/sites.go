package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Sites returns the command for listing console sites.
func Sites() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the sites a WLAN can be assigned to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Sites(cmd.Context())
		},
	}
}
