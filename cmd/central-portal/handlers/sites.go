package handlers

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-logr/logr"
)

// Sites lists the sites known to the console.
func Sites(ctx context.Context) error {
	ctx = logr.NewContext(ctx, newLogger())

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	sites, err := client.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}
	if len(sites) == 0 {
		fmt.Println("No sites found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, s := range sites {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
	}
	return tw.Flush()
}
