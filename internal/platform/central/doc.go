// Package central provides a client for the configuration API of the
// network management console, with the reliability features the WLAN
// deployment orchestrator relies on.
//
// # Architecture
//
// The package is organized into resource-specific files:
//
//   - client.go: resource descriptors and the manager interfaces
//   - real_client.go: HTTP client initialization and request execution
//   - operations.go: create and delete operations shared by all resources
//   - vlan.go, named_vlan.go, wlan.go, scope.go, mpsk.go: resource calls
//   - lookup.go: site, role and VLAN lookups used by the wizard
//   - errors.go: API error decoding and retry classification
//   - metrics.go: Prometheus metrics for every API call
//   - mock_client.go: a function-field mock shared by tests of other packages
//
// # Create and Delete
//
// Create calls are issued exactly once. A POST that timed out may still have
// been applied by the server, so retrying it could create a duplicate.
//
// Delete calls are idempotent: a missing resource counts as deleted, and
// locked, conflicting, rate-limited or server-side failures are retried with
// exponential backoff within the configured delete timeout.
//
// # Timeouts
//
// Timeouts and retry parameters come from [config.Timeouts]:
//
//   - CENTRAL_TIMEOUT_REQUEST: single request timeout (default: 30s)
//   - CENTRAL_TIMEOUT_DELETE: overall delete timeout (default: 2m)
//   - CENTRAL_RETRY_MAX_ATTEMPTS: maximum delete retries (default: 5)
//   - CENTRAL_RETRY_INITIAL_DELAY: initial retry delay (default: 1s)
package central
