// Package logging configures slog for amangrep.
//
// Without --debug the default logger writes warnings and errors to stderr
// as text. With --debug a JSON log is written to ~/.amangrep/logs/ with
// size-based rotation so search runs can be inspected afterwards.
package logging
