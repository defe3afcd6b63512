package wizard

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/util/async"
)

// Answers holds the user's choices from the wizard, as entered.
type Answers struct {
	Name        string
	SSID        string
	Description string
	Enabled     bool

	Scope  config.ScopeKind
	SiteID string

	VLANID      string
	ForwardMode config.ForwardMode
	Gateway     string

	Family     config.SecurityFamily
	Passphrase string
	// MPSKKeys holds one key per line: "name passphrase [vlan] [role]".
	MPSKKeys string
}

// Run runs the WLAN wizard. lookups may be nil, in which case sites are
// entered by id and the VLAN is assumed not to exist yet.
func Run(ctx context.Context, lookups central.LookupService) (*config.WLANRequest, error) {
	logger := logr.FromContextOrDiscard(ctx)

	sites, roles, err := lookup(ctx, lookups)
	if err != nil {
		logger.Error(err, "Console lookup failed, sites are entered by id and key roles are not checked")
	}

	answers := &Answers{
		// Defaults
		Enabled:     true,
		Scope:       config.ScopeGlobal,
		ForwardMode: config.ForwardBridge,
		Family:      config.SecurityPersonal,
	}

	form := huh.NewForm(
		// WLAN identity
		huh.NewGroup(
			huh.NewInput().
				Title("WLAN name").
				Description("Profile name in the console (letters, digits, - and _)").
				Placeholder("corp").
				Value(&answers.Name).
				Validate(config.ValidateName),

			huh.NewInput().
				Title("SSID (optional)").
				Description("Broadcast name. Leave empty to use the WLAN name.").
				Value(&answers.SSID).
				Validate(config.ValidateSSID),

			huh.NewInput().
				Title("Description (optional)").
				Value(&answers.Description).
				Validate(config.ValidateDescription),

			huh.NewConfirm().
				Title("Enable the WLAN right away?").
				Value(&answers.Enabled),
		),

		// Scope
		huh.NewGroup(
			huh.NewSelect[config.ScopeKind]().
				Title("Scope").
				Description("Broadcast on every access point or on one site only").
				Options(
					huh.NewOption("Global", config.ScopeGlobal),
					huh.NewOption("Single site", config.ScopeSite),
				).
				Value(&answers.Scope),
		),
		siteGroup(answers, sites),

		// Network
		huh.NewGroup(
			huh.NewInput().
				Title("VLAN id").
				Description(fmt.Sprintf("%d-%d. Created unless it already exists.", config.MinVLANID, config.MaxVLANID)).
				Placeholder("100").
				Value(&answers.VLANID).
				Validate(validateVLANID),

			huh.NewSelect[config.ForwardMode]().
				Title("Forwarding").
				Description("bridge: switched at the access point | tunnel: sent to a gateway").
				Options(
					huh.NewOption("Bridge", config.ForwardBridge),
					huh.NewOption("Tunnel", config.ForwardTunnel),
				).
				Value(&answers.ForwardMode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gateway cluster").
				Description("Cluster tunneled traffic terminates on").
				Value(&answers.Gateway),
		).WithHideFunc(func() bool { return answers.ForwardMode != config.ForwardTunnel }),

		// Authentication
		huh.NewGroup(
			huh.NewSelect[config.SecurityFamily]().
				Title("Security").
				Options(
					huh.NewOption("Open", config.SecurityOpen),
					huh.NewOption("WPA2 Personal", config.SecurityPersonal),
					huh.NewOption("WPA2 Enterprise", config.SecurityEnterprise),
					huh.NewOption("WPA2 MPSK", config.SecurityMPSK),
				).
				Value(&answers.Family),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Passphrase").
				Description(fmt.Sprintf("%d-%d characters, or 64 hex digits", config.MinPassphraseLength, config.MaxPassphraseLength)).
				EchoMode(huh.EchoModePassword).
				Value(&answers.Passphrase).
				Validate(config.ValidatePassphrase),
		).WithHideFunc(func() bool { return !answers.Family.RequiresPassphrase() }),
		huh.NewGroup(
			huh.NewText().
				Title("Additional MPSK keys (optional)").
				Description(mpskDescription(roles)).
				Placeholder("voice voicephones 60 voip").
				Value(&answers.MPSKKeys).
				Validate(func(s string) error {
					_, err := ParseMPSKKeys(s, roles)
					return err
				}),
		).WithHideFunc(func() bool { return answers.Family != config.SecurityMPSK }),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	req, err := answers.ToRequest(sites, roles)
	if err != nil {
		return nil, fmt.Errorf("invalid answers: %w", err)
	}

	if lookups != nil {
		exists, err := lookups.VLANExists(ctx, req.Network.VLANID)
		if err != nil {
			logger.Error(err, "VLAN lookup failed, the VLAN will be created", "vlan", req.Network.VLANID)
		} else {
			req.Network.VLANExists = exists
		}
	}

	return req, nil
}

// lookup fetches sites and roles concurrently. Whatever was fetched is
// returned even when the other lookup fails.
func lookup(ctx context.Context, lookups central.LookupService) ([]central.Site, []central.Role, error) {
	if lookups == nil {
		return nil, nil, nil
	}

	var (
		sites []central.Site
		roles []central.Role
	)
	err := async.RunParallel(ctx, []async.Task{
		{Name: "sites", Func: func(ctx context.Context) (err error) {
			sites, err = lookups.ListSites(ctx)
			return err
		}},
		{Name: "roles", Func: func(ctx context.Context) (err error) {
			roles, err = lookups.ListRoles(ctx)
			return err
		}},
	})
	return sites, roles, err
}

// siteGroup asks for the site: a selection when sites could be looked up,
// a free-form id otherwise.
func siteGroup(answers *Answers, sites []central.Site) *huh.Group {
	var field huh.Field
	if len(sites) > 0 {
		field = huh.NewSelect[string]().
			Title("Site").
			Options(siteOptions(sites)...).
			Value(&answers.SiteID)
	} else {
		field = huh.NewInput().
			Title("Site id").
			Value(&answers.SiteID).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("site id is required")
				}
				return nil
			})
	}
	return huh.NewGroup(field).WithHideFunc(func() bool { return answers.Scope != config.ScopeSite })
}

func siteOptions(sites []central.Site) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(sites))
	for _, s := range sites {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.ID), s.ID))
	}
	return opts
}

func mpskDescription(roles []central.Role) string {
	desc := "One key per line: name passphrase [vlan] [role]"
	if len(roles) > 0 {
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		desc += "\nRoles: " + strings.Join(names, ", ")
	}
	return desc
}

func validateVLANID(s string) error {
	_, err := config.ParseVLANID(s)
	return err
}

// ToRequest converts the answers to a validated request. sites resolve the
// site name; roles, when known, restrict MPSK key roles.
func (a *Answers) ToRequest(sites []central.Site, roles []central.Role) (*config.WLANRequest, error) {
	vlanID, err := config.ParseVLANID(a.VLANID)
	if err != nil {
		return nil, err
	}

	req := &config.WLANRequest{
		Name:        strings.TrimSpace(a.Name),
		SSID:        strings.TrimSpace(a.SSID),
		Description: strings.TrimSpace(a.Description),
		Enabled:     a.Enabled,
		Scope:       config.GlobalScope(),
		Network: config.NetworkSettings{
			VLANID:      vlanID,
			ForwardMode: a.ForwardMode,
		},
		Auth: config.AuthSettings{Family: a.Family},
	}

	if a.Scope == config.ScopeSite {
		req.Scope = config.SiteScope(strings.TrimSpace(a.SiteID), siteName(sites, a.SiteID))
	}
	if a.ForwardMode == config.ForwardTunnel {
		req.Network.Gateway = strings.TrimSpace(a.Gateway)
	}
	if a.Family.RequiresPassphrase() {
		req.Auth.Passphrase = a.Passphrase
	}
	if a.Family == config.SecurityMPSK {
		if req.Auth.MPSK, err = ParseMPSKKeys(a.MPSKKeys, roles); err != nil {
			return nil, err
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func siteName(sites []central.Site, id string) string {
	for _, s := range sites {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

// ParseMPSKKeys parses MPSK keys, one per line as "name passphrase [vlan] [role]".
// Blank lines and lines starting with # are skipped. When roles is not
// empty, a key's role must be one of them.
func ParseMPSKKeys(text string, roles []central.Role) ([]config.MPSKEntry, error) {
	var entries []config.MPSKEntry
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields) > 4 {
			return nil, fmt.Errorf("line %d: expected name passphrase [vlan] [role]", i+1)
		}
		entry := config.MPSKEntry{Name: fields[0], Passphrase: fields[1]}

		rest := fields[2:]
		if len(rest) > 0 {
			if vlan, err := strconv.Atoi(rest[0]); err == nil {
				entry.VLAN = vlan
				rest = rest[1:]
			}
		}
		switch len(rest) {
		case 0:
		case 1:
			entry.Role = rest[0]
		default:
			return nil, fmt.Errorf("line %d: expected name passphrase [vlan] [role]", i+1)
		}

		if err := config.ValidateMPSKEntry(entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if entry.Role != "" && len(roles) > 0 && !slices.ContainsFunc(roles, func(r central.Role) bool { return r.Name == entry.Role }) {
			return nil, fmt.Errorf("line %d: unknown role %q", i+1, entry.Role)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
