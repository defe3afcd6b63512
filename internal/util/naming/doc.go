// Package naming provides consistent names for the resources a WLAN
// deployment creates.
//
// Every derived name starts with the WLAN name so the resources of one
// deployment can be identified (and cleaned up) together.
package naming
