// Package s3 provides a small client for S3-compatible object storage.
//
// It backs the deployment report archive: reports are written as objects
// under a per-WLAN prefix and can be listed and read back later.
package s3
