package commands

import (
	"github.com/spf13/cobra"

	"github.com/secure-ssid/central-portal/cmd/central-portal/handlers"
)

// Report returns the command group for archived deployment reports.
func Report() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect archived deployment reports",
		Long: `Inspect deployment reports archived with 'deploy --report-bucket'.

Storage is configured with REPORT_S3_ENDPOINT, REPORT_S3_REGION,
REPORT_S3_ACCESS_KEY, REPORT_S3_SECRET_KEY and REPORT_S3_PATH_STYLE.`,
	}

	cmd.PersistentFlags().StringVar(&bucket, "bucket", "", "S3 bucket holding the reports")
	_ = cmd.MarkPersistentFlagRequired("bucket")

	cmd.AddCommand(reportList(&bucket), reportShow(&bucket))

	return cmd
}

func reportList(bucket *string) *cobra.Command {
	var wlan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ReportList(cmd.Context(), *bucket, wlan)
		},
	}

	cmd.Flags().StringVar(&wlan, "wlan", "", "Only list reports of this WLAN")

	return cmd
}

func reportShow(bucket *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <wlan>/<run-id>",
		Short: "Show an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ReportShow(cmd.Context(), *bucket, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")

	return cmd
}
