package central

import "context"

// Opmode is the WLAN security mode understood by the API.
type Opmode string

const (
	OpmodeOpen           Opmode = "OPEN"
	OpmodeWPA2Personal   Opmode = "WPA2_PERSONAL"
	OpmodeWPA2Enterprise Opmode = "WPA2_ENTERPRISE"
	OpmodeWPA2MPSK       Opmode = "WPA2_MPSK_LOCAL"
)

// Forward modes understood by the API.
const (
	ForwardModeBridge = "FORWARD_MODE_BRIDGE"
	ForwardModeTunnel = "FORWARD_MODE_L2"
)

// PersonaCampusAP is the device persona WLAN scope bindings target.
const PersonaCampusAP = "CAMPUS_AP"

// VLANOpts holds the optional attributes of a Layer-2 VLAN.
type VLANOpts struct {
	Name        string
	Description string
}

// VLANRef describes a Layer-2 VLAN.
type VLANRef struct {
	ID          int    `json:"vlan"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// NamedVLANOpts holds the attributes of a named VLAN profile.
type NamedVLANOpts struct {
	VLANIDRanges []string
}

// NamedVLANRef describes a named VLAN profile.
type NamedVLANRef struct {
	Name         string
	VLANIDRanges []string
}

// WLANConfig holds the WLAN profile attributes sent on creation.
type WLANConfig struct {
	SSID        string
	Description string
	Enabled     bool
	Opmode      Opmode
	// Passphrase is sent in the personal-security block for WPA2 personal
	// and MPSK opmodes only.
	Passphrase     string
	ForwardMode    string
	VLANIDRange    []string
	GatewayCluster string
}

// WLANCreateOpts carries hints that do not change where the WLAN is created.
type WLANCreateOpts struct {
	// ScopeHint records the scope the WLAN is intended for. The profile
	// itself is always created at global scope.
	ScopeHint string
}

// WLANRef describes a WLAN profile.
type WLANRef struct {
	Name string
	SSID string
}

// ScopeBinding associates a configuration resource with a scope for a persona.
type ScopeBinding struct {
	ScopeID      string
	Persona      string
	ResourcePath string
}

// BindingRef describes a created scope binding.
type BindingRef struct {
	ScopeID      string
	Persona      string
	ResourcePath string
}

// MPSKRegistration is one key registered for an MPSK WLAN.
type MPSKRegistration struct {
	Name       string
	Passphrase string
	VLAN       int
	// Role is the user role clients authenticating with the key get. Empty keeps the WLAN default.
	Role string
}

// MPSKRef describes a registered MPSK key.
type MPSKRef struct {
	ID   string
	Name string
}

// Site is a deployment site known to the console.
type Site struct {
	ID   string
	Name string
}

// Role is a user role that MPSK keys can be mapped to.
type Role struct {
	Name string
}

// VLANManager defines the interface for managing Layer-2 VLANs.
type VLANManager interface {
	CreateVLAN(ctx context.Context, vlanID int, opts VLANOpts) (*VLANRef, error)
	GetVLAN(ctx context.Context, vlanID int) (*VLANRef, error)
	// DeleteVLAN succeeds when the VLAN does not exist.
	DeleteVLAN(ctx context.Context, vlanID int) error
}

// NamedVLANManager defines the interface for managing named VLAN profiles.
type NamedVLANManager interface {
	CreateNamedVLAN(ctx context.Context, name string, opts NamedVLANOpts) (*NamedVLANRef, error)
	DeleteNamedVLAN(ctx context.Context, name string) error
}

// WLANManager defines the interface for managing WLAN profiles.
type WLANManager interface {
	// CreateWLAN creates the profile at global scope regardless of opts.ScopeHint.
	CreateWLAN(ctx context.Context, name string, cfg WLANConfig, opts WLANCreateOpts) (*WLANRef, error)
	DeleteWLAN(ctx context.Context, name string) error
}

// ScopeManager defines the interface for binding resources to scopes.
type ScopeManager interface {
	CreateScopeBinding(ctx context.Context, binding ScopeBinding) (*BindingRef, error)
}

// MPSKManager defines the interface for registering MPSK keys.
type MPSKManager interface {
	CreateMPSKRegistration(ctx context.Context, reg MPSKRegistration) (*MPSKRef, error)
}

// LookupService defines the read-only lookups used to fill in the wizard.
type LookupService interface {
	ListSites(ctx context.Context) ([]Site, error)
	ListRoles(ctx context.Context) ([]Role, error)
	VLANExists(ctx context.Context, vlanID int) (bool, error)
}

// ResourceClient combines every resource interface the orchestrator drives.
type ResourceClient interface {
	VLANManager
	NamedVLANManager
	WLANManager
	ScopeManager
	MPSKManager
	LookupService
}
