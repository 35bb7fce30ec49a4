package cli

import (
	"io"
	"log/slog"
)

const (
	logMsgMetricsListening = "serving metrics"
	logMsgMetricsFailed    = "metrics server failed"
	logMsgMetricsShutdown  = "metrics server shutdown failed"
	logMsgCloseFailed      = "closing the store failed"
	logAttrAddr            = "addr"
	logAttrError           = "error"
)

// newLogger writes text records to w, including debug records when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
