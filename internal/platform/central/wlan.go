package central

import (
	"context"
	"net/url"
)

type personalSecurity struct {
	PassphraseFormat string `json:"passphrase-format"`
	WPAPassphrase    string `json:"wpa-passphrase"`
}

type wlanPayload struct {
	SSID             string            `json:"ssid"`
	Essid            essid             `json:"essid"`
	Description      string            `json:"description,omitempty"`
	Enable           bool              `json:"enable"`
	Opmode           Opmode            `json:"opmode"`
	PersonalSecurity *personalSecurity `json:"personal-security,omitempty"`
	ForwardMode      string            `json:"forward-mode"`
	VLANSelector     string            `json:"vlan-selector"`
	VLANIDRange      []string          `json:"vlan-id-range,omitempty"`
	VLANName         string            `json:"vlan-name,omitempty"`
	GatewayCluster   string            `json:"gateway-cluster,omitempty"`
}

type essid struct {
	Name string `json:"name"`
}

func wlanPath(name string) string {
	return configAPIPrefix + "/wlan-ssids/" + url.PathEscape(name)
}

// carriesPassphrase reports whether the opmode authenticates with a pre-shared key.
func (m Opmode) carriesPassphrase() bool {
	return m == OpmodeWPA2Personal || m == OpmodeWPA2MPSK
}

func newWLANPayload(name string, cfg WLANConfig) wlanPayload {
	p := wlanPayload{
		SSID:           name,
		Essid:          essid{Name: cfg.SSID},
		Description:    cfg.Description,
		Enable:         cfg.Enabled,
		Opmode:         cfg.Opmode,
		ForwardMode:    cfg.ForwardMode,
		VLANSelector:   "VLAN_RANGES",
		VLANIDRange:    cfg.VLANIDRange,
		GatewayCluster: cfg.GatewayCluster,
	}
	if p.Essid.Name == "" {
		p.Essid.Name = name
	}
	if p.ForwardMode == "" {
		p.ForwardMode = ForwardModeBridge
	}
	if cfg.Opmode.carriesPassphrase() && cfg.Passphrase != "" {
		p.PersonalSecurity = &personalSecurity{
			PassphraseFormat: "STRING",
			WPAPassphrase:    cfg.Passphrase,
		}
	}
	return p
}

// CreateWLAN creates a WLAN profile. The profile is always created at global
// scope; opts.ScopeHint is only forwarded as the intended scope.
func (c *RealClient) CreateWLAN(ctx context.Context, name string, cfg WLANConfig, opts WLANCreateOpts) (*WLANRef, error) {
	query := url.Values{"object-type": {"GLOBAL"}}
	if opts.ScopeHint != "" {
		query.Set("intended-scope", opts.ScopeHint)
	}

	if _, err := (&CreateOperation[struct{}]{
		Name:         name,
		ResourceType: "WLAN",
		Operation:    "create_wlan",
		Path:         wlanPath(name),
		Query:        query,
		Body:         newWLANPayload(name, cfg),
	}).Execute(ctx, c); err != nil {
		return nil, err
	}

	ssid := cfg.SSID
	if ssid == "" {
		ssid = name
	}
	return &WLANRef{Name: name, SSID: ssid}, nil
}

// DeleteWLAN deletes a WLAN profile.
func (c *RealClient) DeleteWLAN(ctx context.Context, name string) error {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "WLAN",
		Operation:    "delete_wlan",
		Path:         wlanPath(name),
		// The profile lives at global scope, so no scope query is needed.
	}).Execute(ctx, c)
}
