// Package retry provides exponential backoff retry logic for transient failures.
//
// [Do] retries an operation with a configurable number of attempts, initial
// delay and maximum delay. It is used for console API delete calls, which
// may fail transiently while a resource is locked or being rate limited.
// Errors wrapped with [Permanent] stop the retry loop immediately.
package retry
