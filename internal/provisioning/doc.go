// Package provisioning provides the WLAN deployment orchestrator and the
// types shared by its step executors.
//
// A deployment is planned by [BuildPlan] and executed by [Orchestrator.Run].
// Step executors live in focused subpackages:
//   - network/ — Layer-2 VLAN and named VLAN
//   - wireless/ — WLAN profile and its site scope binding
//   - mpsk/ — MPSK key registration
//
// Steps run strictly in plan order. A failure in a fatal step stops the run
// and deletes everything created so far in reverse order of creation; a
// failure in a non-fatal step is reported and the run continues.
package provisioning
