// Package logging assembles the structured slog loggers used across retag.
//
// It owns the console and JSON handlers and centralizes level plumbing so
// commands and the import pipeline emit log lines with the same shape. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
