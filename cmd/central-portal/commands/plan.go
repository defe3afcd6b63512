package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Plan returns the command for printing a deployment plan.
func Plan() *cobra.Command {
	var (
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the steps a deployment would run",
		Long: `Show the steps a deployment of a WLAN request file would run.

Nothing is created and the console API is not contacted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Plan(file, output)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to WLAN request file")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
