// Package component manages the lifecycle of the services a run depends on.
//
// The storage connection and the telemetry exporters are components: they
// are started in registration order before the first page is written and
// stopped in reverse order when the run ends.
package component
