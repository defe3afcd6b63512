package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Deploy returns the command for deploying a WLAN.
//
// Optional flags:
//
//	--file, -f: Path to a WLAN request file (default: run the wizard)
//	--no-tui: Log progress lines instead of showing the progress list
//	--report-bucket: Archive the deployment report in this S3 bucket
//	--metrics-file: Write deployment metrics to this file
//
// Environment variables:
//
//	CENTRAL_BASE_URL, CENTRAL_TOKEN: console API access
//	REPORT_S3_*: report storage (see config.LoadStorageSettings)
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a WLAN",
		Long: `Deploy a WLAN through the console API.

The WLAN is read from a request file, or collected with the wizard when
no file is given. Steps run one at a time:

  1. Create the VLAN (unless it already exists)
  2. Create the named VLAN
  3. Create the WLAN profile
  4. Assign the WLAN to its site (site scope only)
  5. Register MPSK keys (MPSK security only)

If the VLAN, named VLAN or WLAN step fails, the resources created so far
are deleted again. Site assignment and MPSK failures are reported but
keep the deployment.

On a terminal the steps are shown as a progress list; press r to try a
failed deployment again or q to close.

Examples:
  # Deploy from a request file
  central-portal deploy -f wlan.yaml

  # Plain log output, report archived to S3
  central-portal deploy -f wlan.yaml --no-tui --report-bucket wlan-reports`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path to WLAN request file (default: run the wizard)")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable the interactive progress list")
	cmd.Flags().StringVar(&opts.ReportBucket, "report-bucket", "", "S3 bucket to archive the deployment report in")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write deployment metrics in text format to this file")

	return cmd
}
