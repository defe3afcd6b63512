package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field limits enforced before any API call is made.
const (
	MaxNameLength        = 32
	MaxSSIDLength        = 32
	MaxDescriptionLength = 128
	MinVLANID            = 1
	MaxVLANID            = 4094
	MinPassphraseLength  = 8
	MaxPassphraseLength  = 63
	hexPSKLength         = 64
)

var (
	nameRegex   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	hexPSKRegex = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)
)

// Severity levels of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a request validation error or warning.
type ValidationError struct {
	Field    string // Request field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// ValidateName checks a WLAN or key name: 1-32 characters of letters,
// digits, hyphens and underscores, starting with a letter or digit.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return errors.New("name may only contain letters, digits, hyphens and underscores, and must start with a letter or digit")
	}
	return nil
}

// ValidateSSID checks the broadcast name. An empty SSID is allowed and
// means the WLAN name is broadcast.
func ValidateSSID(ssid string) error {
	if len(ssid) > MaxSSIDLength {
		return fmt.Errorf("SSID must be at most %d bytes", MaxSSIDLength)
	}
	for _, r := range ssid {
		if r < 0x20 || r == 0x7f {
			return errors.New("SSID must not contain control characters")
		}
	}
	return nil
}

// ValidateDescription checks the optional free-text description.
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateVLANID checks that id is a usable 802.1Q VLAN id.
func ValidateVLANID(id int) error {
	if id < MinVLANID || id > MaxVLANID {
		return fmt.Errorf("VLAN id %d out of range (%d-%d)", id, MinVLANID, MaxVLANID)
	}
	return nil
}

// ParseVLANID parses and validates a VLAN id typed by a user.
func ParseVLANID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("VLAN id is required")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("VLAN id %q is not a number", s)
	}
	if err := ValidateVLANID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidatePassphrase checks a WPA pre-shared key: 8-63 printable ASCII
// characters, or exactly 64 hexadecimal digits.
func ValidatePassphrase(p string) error {
	if p == "" {
		return errors.New("passphrase is required")
	}
	if len(p) == hexPSKLength {
		if !hexPSKRegex.MatchString(p) {
			return errors.New("a 64 character passphrase must be hexadecimal")
		}
		return nil
	}
	if len(p) < MinPassphraseLength || len(p) > MaxPassphraseLength {
		return fmt.Errorf("passphrase must be %d-%d characters", MinPassphraseLength, MaxPassphraseLength)
	}
	for _, r := range p {
		if r < 0x20 || r > 0x7e {
			return errors.New("passphrase may only contain printable ASCII characters")
		}
	}
	return nil
}

// ValidateMPSKEntry checks one named MPSK key.
func ValidateMPSKEntry(e MPSKEntry) error {
	if err := ValidateName(e.Name); err != nil {
		return fmt.Errorf("key %q: %w", e.Name, err)
	}
	if err := ValidatePassphrase(e.Passphrase); err != nil {
		return fmt.Errorf("key %q: %w", e.Name, err)
	}
	if e.VLAN != 0 {
		if err := ValidateVLANID(e.VLAN); err != nil {
			return fmt.Errorf("key %q: %w", e.Name, err)
		}
	}
	return nil
}

// Check runs all field checks and returns every error and warning found.
func (r WLANRequest) Check() []ValidationError {
	var errs []ValidationError
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Severity: SeverityError})
		}
	}
	warn := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg, Severity: SeverityWarning})
	}

	// --- Identity ---

	add("name", ValidateName(r.Name))
	add("ssid", ValidateSSID(r.SSID))
	add("description", ValidateDescription(r.Description))

	// --- Scope ---

	switch r.Scope.Kind {
	case ScopeGlobal:
	case ScopeSite:
		if r.Scope.SiteID == "" {
			add("scope.site_id", errors.New("site id is required for site scope"))
		}
		if r.IsTunneled() {
			warn("scope", "tunneled WLANs broadcast globally regardless of the selected site")
		}
	default:
		add("scope.kind", fmt.Errorf("unknown scope %q (expected %q or %q)", r.Scope.Kind, ScopeGlobal, ScopeSite))
	}

	// --- Network ---

	add("network.vlan_id", ValidateVLANID(r.Network.VLANID))
	switch r.Network.ForwardMode {
	case ForwardBridge:
	case ForwardTunnel:
		if r.Network.Gateway == "" {
			warn("network.gateway", "no gateway selected for a tunneled WLAN")
		}
	default:
		add("network.forward_mode", fmt.Errorf("unknown forward mode %q", r.Network.ForwardMode))
	}

	// --- Authentication ---

	switch r.Auth.Family {
	case SecurityOpen:
		warn("auth.family", "open WLANs transmit client traffic unencrypted")
	case SecurityEnterprise:
		if r.Auth.Passphrase != "" {
			warn("auth.passphrase", "passphrase is ignored for enterprise authentication")
		}
	case SecurityPersonal:
		add("auth.passphrase", ValidatePassphrase(r.Auth.Passphrase))
	case SecurityMPSK:
		add("auth.passphrase", ValidatePassphrase(r.Auth.Passphrase))
		seen := make(map[string]bool, len(r.Auth.MPSK))
		for i, e := range r.Auth.MPSK {
			field := fmt.Sprintf("auth.mpsk[%d]", i)
			add(field, ValidateMPSKEntry(e))
			if seen[e.Name] {
				add(field, fmt.Errorf("duplicate key name %q", e.Name))
			}
			seen[e.Name] = true
		}
	default:
		add("auth.family", fmt.Errorf("unknown security family %q", r.Auth.Family))
	}

	if len(r.Auth.MPSK) > 0 && r.Auth.Family != SecurityMPSK {
		warn("auth.mpsk", "named keys are ignored unless the security family is mpsk")
	}

	return errs
}

// Validate returns an error listing every error-severity problem of the
// request. Warnings are not reported; use Check to see them.
func (r WLANRequest) Validate() error {
	var msgs []string
	for _, ve := range r.Check() {
		if ve.IsError() {
			msgs = append(msgs, ve.Error())
		}
	}
	if len(msgs) > 0 {
		return fmt.Errorf("request validation failed:\n  %s", strings.Join(msgs, "\n  "))
	}
	return nil
}

// Warnings returns the warning-severity findings of Check.
func (r WLANRequest) Warnings() []ValidationError {
	var warnings []ValidationError
	for _, ve := range r.Check() {
		if !ve.IsError() {
			warnings = append(warnings, ve)
		}
	}
	return warnings
}
