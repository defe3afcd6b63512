// Package report builds, renders and archives deployment reports.
//
// A report is a secret-free summary of one deployment run. It renders as
// text for the terminal or as JSON or YAML for tooling, and can be stored
// in S3-compatible object storage.
package report
