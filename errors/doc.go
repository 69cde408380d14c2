// Package errors provides the structured error type shared by the outlet
// packages. Every failure that crosses a package boundary carries a
// machine-readable code and a retryable flag so the packer and the CLI can
// decide whether to continue, abort, or exit.
package errors
