// Package logging assembles the slog loggers used by movielog.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stderr plus an optional log file). Context helpers tag lines with the
// operation being run and the title it concerns, so every component logs
// with the same field shape. NewNop is provided for tests and wiring code
// that cannot fail.
package logging
