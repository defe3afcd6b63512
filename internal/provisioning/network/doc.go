// Package network provisions the Layer-2 placement of a WLAN: the VLAN and
// the named VLAN profile access points use to reference it.
package network
