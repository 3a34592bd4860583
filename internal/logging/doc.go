// Package logging constructs the slog loggers used across chine.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for anything that captures the stream. When no
// format is configured the package picks console on a terminal and JSON
// otherwise. Components attach a stable "component" attribute via
// NewComponentLogger; the console handler hoists it into the message
// prefix.
package logging
