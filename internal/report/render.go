package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

// Format is an output format of Render and RenderPlan.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatText, "":
		return renderText(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderPlan writes a deployment plan to w in the given format.
func RenderPlan(w io.Writer, wlan string, plan []provisioning.Step, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, planDocument(wlan, plan))
	case FormatYAML:
		return writeYAML(w, planDocument(wlan, plan))
	case FormatText, "":
		fmt.Fprintf(w, "Deployment plan for WLAN %s:\n", wlan)
		for i, s := range plan {
			optional := ""
			if !s.ID.Fatal() {
				optional = " (optional)"
			}
			fmt.Fprintf(w, "  %d. %s%s\n", i+1, s.Label, optional)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type planStep struct {
	ID       provisioning.StepID `json:"id"`
	Label    string              `json:"label"`
	Optional bool                `json:"optional"`
}

type plan struct {
	WLAN  string     `json:"wlan"`
	Steps []planStep `json:"steps"`
}

func planDocument(wlan string, steps []provisioning.Step) plan {
	doc := plan{WLAN: wlan, Steps: make([]planStep, 0, len(steps))}
	for _, s := range steps {
		doc.Steps = append(doc.Steps, planStep{ID: s.ID, Label: s.Label, Optional: !s.ID.Fatal()})
	}
	return doc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func renderText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "WLAN %s (SSID %s, %s, VLAN %d)\n", r.WLAN, r.SSID, r.Scope, r.VLANID)
	fmt.Fprintf(w, "Run %s: %s in %s\n", r.RunID, r.State, r.Duration)
	if r.Message != "" {
		fmt.Fprintf(w, "%s\n", r.Message)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSTEP\tSTATUS\tDETAIL")
	for _, s := range r.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Label, s.Status, s.ErrorMessage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	writeResources(w, "Created", r.Created)
	writeResources(w, "Rolled back", r.RolledBack)
	writeResources(w, "Left behind (remove manually)", r.Orphaned)
	return nil
}

func writeResources(w io.Writer, title string, resources []provisioning.CreatedResource) {
	if len(resources) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, res := range resources {
		fmt.Fprintf(w, "  %s\n", res.String())
	}
}
