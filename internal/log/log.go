// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package log builds the structured logger shared by the pipeline stages.
// Progress meant for the user is written directly to an io.Writer by each
// stage; this logger carries diagnostics (skipped and failed articles,
// browser lifecycle, export paths).
package log

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Verbose enables debug records;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: dropTime,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dropTime removes the timestamp from top-level records; the CLI is
// interactive and the lines are read as they appear.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
