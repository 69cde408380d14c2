// Package version reports build information for the outlet binary.
//
// Values are set at build time via -ldflags and fall back to the module
// build info embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/ocdsoutlet/version.Version=1.2.0" ./cmd/outlet
package version
