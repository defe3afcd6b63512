// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/config/wizard"
	"github.com/secure-ssid/central-portal/internal/orchestration"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/report"
	"github.com/secure-ssid/central-portal/internal/ui/tui"
)

// DeployOptions holds the flags of the deploy command.
type DeployOptions struct {
	// File is the request file. When empty the wizard collects the request.
	File         string
	NoTUI        bool
	ReportBucket string
	MetricsFile  string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadRequest loads a request file.
	loadRequest = config.LoadFile

	// runWizard collects a request interactively.
	runWizard = wizard.Run

	// runDeployTUI shows the progress list while deploying.
	runDeployTUI = tui.RunDeployTUI

	// metricsGatherer is the source of --metrics-file.
	metricsGatherer prometheus.Gatherer = prometheus.DefaultGatherer
)

var (
	summaryOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	summaryWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#eab308"))
	summaryFailed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
)

// Deploy deploys a WLAN through the console API.
//
// The workflow:
//  1. Connects to the console API (CENTRAL_BASE_URL, CENTRAL_TOKEN)
//  2. Loads the request file or runs the wizard
//  3. Runs the deployment with the progress list, or with log lines when
//     stdout is not a terminal or --no-tui is set
//  4. Prints the deployment summary
//  5. Archives the report and writes metrics when requested
//
// Report archiving and metrics problems are logged; only the deployment
// itself decides the returned error.
func Deploy(ctx context.Context, opts DeployOptions) error {
	logger := newLogger()
	ctx = logr.NewContext(ctx, logger)

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	req, err := buildRequest(ctx, client, opts.File)
	if err != nil {
		return err
	}
	printWarnings(req)

	var result *provisioning.Result
	if !opts.NoTUI && stdoutIsTerminal() {
		result, err = deployWithTUI(ctx, client, logger, req)
	} else {
		d := orchestration.NewDeployer(client, orchestration.WithLogger(logger))
		result, err = d.Deploy(ctx, req)
	}

	if result != nil {
		rep := report.Build(result, req)
		printDeploySummary(rep)
		// The report of an interrupted run is still archived.
		archiveReport(context.WithoutCancel(ctx), opts.ReportBucket, rep)
	}
	writeMetrics(logger, opts.MetricsFile)

	if err != nil {
		return fmt.Errorf("deployment of WLAN %s failed: %w", req.Name, err)
	}
	return nil
}

// buildRequest loads the request file, or runs the wizard when there is none.
// For file requests the console is asked whether the VLAN already exists.
func buildRequest(ctx context.Context, client central.ResourceClient, file string) (*config.WLANRequest, error) {
	logger := logr.FromContextOrDiscard(ctx)

	if file == "" {
		if !stdinIsTerminal() {
			return nil, errNoTerminal
		}
		return runWizard(ctx, client)
	}

	req, err := loadRequest(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	logger.V(1).Info("Loaded request", "file", file, "wlan", req.Name)

	if !req.Network.VLANExists {
		exists, err := client.VLANExists(ctx, req.Network.VLANID)
		switch {
		case err != nil:
			logger.Error(err, "VLAN lookup failed, the VLAN will be created", "vlan", req.Network.VLANID)
		case exists:
			logger.Info("VLAN already exists and will be reused", "vlan", req.Network.VLANID)
			req.Network.VLANExists = true
		}
	}
	return req, nil
}

func deployWithTUI(ctx context.Context, client central.ResourceClient, logger logr.Logger, req *config.WLANRequest) (*provisioning.Result, error) {
	obs := tui.NewObserver()
	d := orchestration.NewDeployer(client,
		orchestration.WithLogger(logger),
		orchestration.WithObserver(obs),
		orchestration.WithoutEventLog(),
	)

	return runDeployTUI(ctx, req.Name, req.Scope.String(),
		func() []provisioning.Step { return d.Plan(req) },
		func(ctx context.Context) (*provisioning.Result, error) { return d.Deploy(ctx, req) },
		obs,
	)
}

func printWarnings(req *config.WLANRequest) {
	for _, w := range req.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Error())
	}
}

// printDeploySummary prints the outcome of a run followed by its report.
func printDeploySummary(rep *report.Report) {
	fmt.Println()
	switch {
	case !rep.Succeeded():
		fmt.Println(summaryFailed.Render("Deployment failed"))
	case hasFailedStep(rep):
		fmt.Println(summaryWarn.Render("Deployed with warnings"))
	default:
		fmt.Println(summaryOK.Render("Deployed"))
	}
	fmt.Println()
	_ = report.Render(os.Stdout, rep, report.FormatText)
	fmt.Println()
}

func hasFailedStep(rep *report.Report) bool {
	for _, s := range rep.Steps {
		if s.Status == provisioning.StatusFailed {
			return true
		}
	}
	return false
}

func writeMetrics(logger logr.Logger, path string) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, metricsGatherer); err != nil {
		logger.Error(err, "Failed to write metrics", "file", path)
		return
	}
	logger.V(1).Info("Wrote metrics", "file", path)
}
