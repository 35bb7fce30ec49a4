package metrics

import (
	"errors"
	"time"
)

// ErrInvalidReportInterval is returned when WithReportInterval receives a non-positive interval.
var ErrInvalidReportInterval = errors.New("report interval must be positive")

// ErrUnknownFormat is returned when WithFormat receives an unknown format.
var ErrUnknownFormat = errors.New("unknown report format")

// Logger interface for reporting write failures.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring an Aggregator.
type Option func(*Aggregator) error

// WithFormat selects text or JSON report lines.
func WithFormat(format Format) Option {
	return func(a *Aggregator) error {
		switch format {
		case FormatText, FormatJSON:
			a.format = format
			return nil
		default:
			return ErrUnknownFormat
		}
	}
}

// WithReportInterval overrides the default one second report interval.
func WithReportInterval(interval time.Duration) Option {
	return func(a *Aggregator) error {
		if interval <= 0 {
			return ErrInvalidReportInterval
		}

		a.reportInterval = interval

		return nil
	}
}

// WithClock replaces time.Now, tests use it to control when reports are due.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) error {
		a.now = now
		return nil
	}
}

// WithRunID tags every snapshot with the id of the benchmark run.
func WithRunID(runID string) Option {
	return func(a *Aggregator) error {
		a.runID = runID
		return nil
	}
}

// WithLogger sets the logger for the Aggregator.
func WithLogger(logger Logger) Option {
	return func(a *Aggregator) error {
		a.logger = logger
		return nil
	}
}

// WithMetrics forwards every sample and snapshot to collector, tagged with labels.
func WithMetrics(collector MetricsCollector, labels map[string]string) Option {
	return func(a *Aggregator) error {
		a.collector = collector
		a.labels = labels

		return nil
	}
}
