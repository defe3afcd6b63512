// Package config defines the WLAN deployment request and the settings used
// to reach the network management API.
//
// The [WLANRequest] struct is the canonical, read-only input of one WLAN
// deployment. It is produced by the interactive wizard or decoded from a
// request file with [LoadFile]. The pure field validators in this package
// ([ValidateName], [ValidateVLANID], [ValidatePassphrase], ...) run before
// any API call is attempted and are shared by the wizard forms and the
// orchestrator's precondition checks.
package config
