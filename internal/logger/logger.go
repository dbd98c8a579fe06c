// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package logger configures log/slog for cfnparams.
//
// Logs are written to stderr so that stdout carries nothing but the
// generated parameter document.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable holding the log level.
const EnvLogLevel = "CFNPARAMS_LOG_LEVEL"

// ParseLevel maps a case-insensitive level name (debug, info, warn, error)
// to a slog.Level. Unknown or empty names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger creates a text logger writing to stderr at the given level and
// installs it as the default logger.
//
// Example usage:
//
//	logger := InitLogger(os.Getenv(EnvLogLevel))
//	logger.Debug("Parsed arguments", "action", "create")
func InitLogger(level string) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	logger := slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(logger)

	return logger
}
