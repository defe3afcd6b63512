// Package main is the entry point for the central-portal CLI.
//
// central-portal deploys WLANs through a network management console:
// it creates the VLAN, the WLAN profile, its scope binding and any MPSK
// keys in order, and rolls back what it created when a required step
// fails.
//
// Commands: init, deploy, plan, sites, report, version.
//
// For detailed usage information, run:
//
//	central-portal --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/secure-ssid/central-portal/cmd/central-portal/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// An interrupt cancels the command's context. A running deployment then
	// rolls back what it created before the command returns.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
