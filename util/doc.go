// Package util holds small helpers shared by the service packages:
// human-readable size parsing, secret masking and string cleanup.
package util
