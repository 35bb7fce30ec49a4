package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/leoppro/tiny-orders/metrics"
)

const (
	defaultTickRate      = 50
	defaultQueueCapacity = 10
	defaultSendTimeout   = 15 * time.Millisecond
)

// LimiterOption defines a functional option for configuring a Limiter.
type LimiterOption func(*Limiter) error

// WithTickRate sets how many times per second tokens are minted.
func WithTickRate(ticksPerSecond uint32) LimiterOption {
	return func(l *Limiter) error {
		if ticksPerSecond == 0 {
			return ErrInvalidTickRate
		}

		l.tickRate = ticksPerSecond

		return nil
	}
}

// WithQueueCapacity sets how many tokens may wait for a worker.
func WithQueueCapacity(capacity int) LimiterOption {
	return func(l *Limiter) error {
		if capacity <= 0 {
			return ErrInvalidQueueCapacity
		}

		l.capacity = capacity

		return nil
	}
}

// WithSendTimeout sets how long a tick waits for room in a full queue before dropping its token.
func WithSendTimeout(timeout time.Duration) LimiterOption {
	return func(l *Limiter) error {
		if timeout <= 0 {
			return ErrInvalidSendTimeout
		}

		l.sendTimeout = timeout

		return nil
	}
}

// WithLimiterLogger sets the logger for the Limiter.
func WithLimiterLogger(logger Logger) LimiterOption {
	return func(l *Limiter) error {
		l.logger = logger
		return nil
	}
}

// WithLimiterMetrics counts issued and dropped tokens in collector.
func WithLimiterMetrics(collector metrics.MetricsCollector) LimiterOption {
	return func(l *Limiter) error {
		l.collector = collector
		return nil
	}
}

// Limiter mints tokens at a fixed cadence into a bounded queue.
// A token carries the number of transaction attempts its receiver may make.
// Tokens that find the queue full for longer than the send timeout are dropped.
type Limiter struct {
	tickRate    uint32
	capacity    int
	sendTimeout time.Duration
	logger      Logger
	collector   metrics.MetricsCollector

	issued  atomic.Uint64
	dropped atomic.Uint64
}

// NewLimiter creates a Limiter ticking 50 times per second with a queue of 10 tokens.
func NewLimiter(options ...LimiterOption) (*Limiter, error) {
	l := &Limiter{
		tickRate:    defaultTickRate,
		capacity:    defaultQueueCapacity,
		sendTimeout: defaultSendTimeout,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// TokensPerTick returns ceil(rate/tickRate), at least one.
func TokensPerTick(ratePerSecond, tickRate uint32) uint32 {
	perTick := (uint64(ratePerSecond) + uint64(tickRate) - 1) / uint64(tickRate)

	return uint32(max(perTick, 1))
}

// Start mints tokens for ratePerSecond attempts per second until ctx is done.
// The returned channel is closed after the last token was queued; tokens already
// queued stay receivable.
func (l *Limiter) Start(ctx context.Context, ratePerSecond uint32) <-chan uint32 {
	tokens := make(chan uint32, l.capacity)
	perTick := TokensPerTick(ratePerSecond, l.tickRate)

	if l.logger != nil {
		l.logger.Debug(logMsgLimiterStarted, logAttrTokensPerTick, perTick)
	}

	go func() {
		defer close(tokens)

		ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
		defer ticker.Stop()

		for {
			if ctx.Err() != nil {
				l.stopped()
				return
			}

			l.offer(tokens, perTick)

			select {
			case <-ctx.Done():
				l.stopped()
				return
			case <-ticker.C:
			}
		}
	}()

	return tokens
}

// Issued returns the number of tokens queued so far.
func (l *Limiter) Issued() uint64 {
	return l.issued.Load()
}

// Dropped returns the number of tokens dropped because the queue stayed full.
func (l *Limiter) Dropped() uint64 {
	return l.dropped.Load()
}

func (l *Limiter) offer(tokens chan<- uint32, token uint32) {
	select {
	case tokens <- token:
		l.issuedOne()
		return
	default:
	}

	timer := time.NewTimer(l.sendTimeout)
	defer timer.Stop()

	select {
	case tokens <- token:
		l.issuedOne()
	case <-timer.C:
		l.dropped.Add(1)

		if l.collector != nil {
			l.collector.IncrementCounter(metrics.MetricDroppedTokens, nil)
		}

		if l.logger != nil {
			l.logger.Debug(logMsgTokenDropped)
		}
	}
}

func (l *Limiter) issuedOne() {
	l.issued.Add(1)

	if l.collector != nil {
		l.collector.IncrementCounter(metrics.MetricIssuedTokens, nil)
	}
}

func (l *Limiter) stopped() {
	if l.logger != nil {
		l.logger.Info(logMsgLimiterStopped, logAttrIssued, l.issued.Load(), logAttrDropped, l.dropped.Load())
	}
}
