package naming

import (
	"fmt"
	"strconv"
)

// Naming functions for WLAN deployment resources.

// NamedVLAN returns the named VLAN profile created for a WLAN.
func NamedVLAN(wlan string, vlanID int) string {
	return fmt.Sprintf("%s-vlan-%d", wlan, vlanID)
}

// VLANName returns the display name of a Layer-2 VLAN created for a WLAN.
func VLANName(wlan string, vlanID int) string {
	return fmt.Sprintf("%s_%d", wlan, vlanID)
}

// DefaultMPSKKey returns the name of the key derived from the WLAN passphrase.
func DefaultMPSKKey(wlan string) string {
	return wlan + "-default"
}

// MPSKKey returns the registered name of an additional named key.
func MPSKKey(wlan, key string) string {
	return fmt.Sprintf("%s-%s", wlan, key)
}

// WLANResourcePath returns the configuration path used when binding a WLAN to a scope.
func WLANResourcePath(wlan string) string {
	return "wlan-ssids/" + wlan
}

// VLANRange renders a single VLAN id as a vlan-id-range entry.
func VLANRange(vlanID int) string {
	return strconv.Itoa(vlanID)
}
