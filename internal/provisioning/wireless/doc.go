// Package wireless provisions the WLAN profile and binds it to the site it
// should broadcast at.
//
// WLAN profiles are always created at global scope. Site deployments that
// switch traffic locally get an additional scope binding; tunneled WLANs
// broadcast globally and are never bound.
package wireless
