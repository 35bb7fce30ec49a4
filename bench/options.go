package bench

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/metrics"
)

// Logger interface for phase progress, warnings and failures.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option shared by Prepare and Run.
type Option func(*phase)

// WithLogger sets the logger for all components of a phase.
func WithLogger(logger Logger) Option {
	return func(p *phase) {
		p.logger = logger
	}
}

// WithOutput sets where console lines and percentile reports are written. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(p *phase) {
		p.out = out
	}
}

// WithFormat selects text or JSON percentile reports.
func WithFormat(format metrics.Format) Option {
	return func(p *phase) {
		p.format = format
	}
}

// WithMetricsCollector forwards samples and limiter counters to collector.
func WithMetricsCollector(collector metrics.MetricsCollector) Option {
	return func(p *phase) {
		p.collector = collector
	}
}

// WithRunID overrides the generated run id.
func WithRunID(runID string) Option {
	return func(p *phase) {
		p.runID = runID
	}
}

// WithLimiterOptions passes options to the run phase's Limiter.
func WithLimiterOptions(options ...engine.LimiterOption) Option {
	return func(p *phase) {
		p.limiterOptions = append(p.limiterOptions, options...)
	}
}

type phase struct {
	logger         Logger
	out            io.Writer
	format         metrics.Format
	collector      metrics.MetricsCollector
	runID          string
	limiterOptions []engine.LimiterOption
}

func newPhase(options []Option) *phase {
	p := &phase{
		logger: slog.New(slog.DiscardHandler),
		out:    os.Stdout,
		format: metrics.FormatText,
	}

	if id, err := uuid.NewV7(); err == nil {
		p.runID = id.String()
	}

	for _, option := range options {
		option(p)
	}

	return p
}
