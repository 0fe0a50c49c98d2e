// Package logging builds the zap loggers used across the server.
//
// stdout carries the MCP protocol stream, so every log line goes to stderr.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names for sub-loggers. One named logger per subsystem keeps
// stderr output attributable when several tools run back to back.
const (
	CategoryServer = "server"
	CategoryTools  = "tools"
	CategoryLive   = "live"
	CategoryExport = "export"
)

// New constructs the root logger. Verbose enables debug level. The returned
// AtomicLevel stays live, so verbosity from sources read after startup (the
// config file) can still raise it.
func New(verbose bool) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	return log, level, err
}

// Nop returns a disabled logger for tests and optional dependencies.
func Nop() *zap.Logger {
	return zap.NewNop()
}
