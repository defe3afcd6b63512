// Package wizard provides the interactive WLAN wizard.
//
// This package implements a TUI-based wizard that guides users through
// creating a WLAN deployment request. It uses charmbracelet/huh for
// form-based input collection.
//
// The main entry point is Run, which looks up sites and roles when the
// console is reachable, asks the questions and returns a validated
// request. Use WriteRequest to generate the YAML request file.
package wizard
