// Package version reports build information for the oasisd binary.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/oasisdoc/version.Version=1.2.0" ./cmd/oasisd
//
// Unset values fall back to the module's embedded VCS metadata.
package version
