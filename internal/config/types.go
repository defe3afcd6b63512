package config

import "slices"

// ScopeKind selects where a WLAN is intended to broadcast.
type ScopeKind string

const (
	// ScopeGlobal broadcasts the WLAN on every access point.
	ScopeGlobal ScopeKind = "global"
	// ScopeSite restricts the WLAN to the access points of one site.
	ScopeSite ScopeKind = "site"
)

// ForwardMode controls how client traffic leaves the access point.
type ForwardMode string

const (
	// ForwardBridge switches client traffic locally at the access point.
	ForwardBridge ForwardMode = "bridge"
	// ForwardTunnel tunnels client traffic to a gateway.
	ForwardTunnel ForwardMode = "tunnel"
)

// SecurityFamily is the authentication family of a WLAN.
type SecurityFamily string

const (
	SecurityOpen       SecurityFamily = "open"
	SecurityPersonal   SecurityFamily = "personal"
	SecurityEnterprise SecurityFamily = "enterprise"
	SecurityMPSK       SecurityFamily = "mpsk"
)

// RequiresPassphrase reports whether the family authenticates with a pre-shared key.
func (f SecurityFamily) RequiresPassphrase() bool {
	return f == SecurityPersonal || f == SecurityMPSK
}

// Scope identifies the deployment scope of a WLAN.
type Scope struct {
	Kind     ScopeKind `mapstructure:"kind" yaml:"kind" json:"kind"`
	SiteID   string    `mapstructure:"site_id" yaml:"site_id,omitempty" json:"siteId,omitempty"`
	SiteName string    `mapstructure:"site_name" yaml:"site_name,omitempty" json:"siteName,omitempty"`
}

// GlobalScope returns the global deployment scope.
func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

// SiteScope returns a scope bound to the given site.
func SiteScope(id, name string) Scope {
	return Scope{Kind: ScopeSite, SiteID: id, SiteName: name}
}

// IsSite reports whether the scope targets a single site.
func (s Scope) IsSite() bool {
	return s.Kind == ScopeSite
}

// String renders the scope for display.
func (s Scope) String() string {
	if !s.IsSite() {
		return "Global"
	}
	if s.SiteName != "" {
		return s.SiteName
	}
	return "site " + s.SiteID
}

// NetworkSettings holds the Layer-2 placement of a WLAN.
type NetworkSettings struct {
	VLANID      int         `mapstructure:"vlan_id" yaml:"vlan_id"`
	VLANExists  bool        `mapstructure:"vlan_exists" yaml:"vlan_exists"`
	ForwardMode ForwardMode `mapstructure:"forward_mode" yaml:"forward_mode"`
	// Gateway is the gateway cluster tunneled traffic terminates on.
	Gateway string `mapstructure:"gateway" yaml:"gateway,omitempty"`
}

// MPSKEntry is one named pre-shared key of an MPSK WLAN.
type MPSKEntry struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Passphrase string `mapstructure:"passphrase" yaml:"passphrase"`
	// VLAN overrides the WLAN VLAN for clients using this key. Zero inherits it.
	VLAN int `mapstructure:"vlan" yaml:"vlan,omitempty"`
	// Role maps clients using this key to a user role.
	Role string `mapstructure:"role" yaml:"role,omitempty"`
}

// AuthSettings holds the authentication settings of a WLAN.
type AuthSettings struct {
	Family     SecurityFamily `mapstructure:"family" yaml:"family"`
	Passphrase string         `mapstructure:"passphrase" yaml:"passphrase,omitempty"`
	MPSK       []MPSKEntry    `mapstructure:"mpsk" yaml:"mpsk,omitempty"`
}

// WLANRequest is the complete input of one WLAN deployment.
//
// It is built once from the wizard (or a request file) and treated as
// read-only for the duration of a deployment run.
type WLANRequest struct {
	Name        string          `mapstructure:"name" yaml:"name"`
	SSID        string          `mapstructure:"ssid" yaml:"ssid"`
	Description string          `mapstructure:"description" yaml:"description,omitempty"`
	Enabled     bool            `mapstructure:"enabled" yaml:"enabled"`
	Scope       Scope           `mapstructure:"scope" yaml:"scope"`
	Network     NetworkSettings `mapstructure:"network" yaml:"network"`
	Auth        AuthSettings    `mapstructure:"auth" yaml:"auth"`
}

// Clone returns a deep copy of the request.
func (r WLANRequest) Clone() WLANRequest {
	r.Auth.MPSK = slices.Clone(r.Auth.MPSK)
	return r
}

// EffectiveSSID returns the broadcast name, falling back to the WLAN name.
func (r WLANRequest) EffectiveSSID() string {
	if r.SSID != "" {
		return r.SSID
	}
	return r.Name
}

// IsTunneled reports whether client traffic is tunneled to a gateway.
func (r WLANRequest) IsTunneled() bool {
	return r.Network.ForwardMode == ForwardTunnel
}
