// Package component defines lifecycle-managed parts of the service (the
// HTTP server, telemetry exporters, external collaborators) and a registry
// that starts them in order, stops them in reverse and aggregates their
// health.
package component
