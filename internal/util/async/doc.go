// Package async provides utilities for parallel task execution with
// error collection.
//
// The [RunParallel] function executes independent lookups concurrently
// and returns every failure, each tagged with the name of its task.
package async
