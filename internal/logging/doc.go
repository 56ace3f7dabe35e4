// Package logging builds the slog loggers used across mangareel.
//
// Two formats are supported: a compact console format for interactive runs and
// JSON for scheduled jobs whose output lands in CI logs. NewFromConfig tees
// output to stdout and a log file under the configured log directory.
package logging
