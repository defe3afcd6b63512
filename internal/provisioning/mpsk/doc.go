// Package mpsk registers the pre-shared keys of an MPSK WLAN: a default key
// derived from the WLAN passphrase and one key per named entry.
package mpsk
