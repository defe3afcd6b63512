// Package orchestration wires the WLAN deployment workflow together.
//
// It registers the step executors of every provisioning subpackage with a
// provisioning.Orchestrator and attaches the observers a caller asks for,
// plus deployment metrics. The orchestrator defines the order and handles
// failures; the executors do the actual work.
package orchestration
