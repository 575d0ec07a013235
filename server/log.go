package server

import "github.com/decred/slog"

// log is disabled until UseLogger is called by the binary.
var log = slog.Disabled

// UseLogger sets the package logger.
func UseLogger(logger slog.Logger) {
	log = logger
}
