package workload

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ErrCommodityMissing is returned when a commodity that must exist is not found.
var ErrCommodityMissing = errors.New("commodity missing")

// ErrConsumerMissing is returned when a consumer that must exist is not found.
var ErrConsumerMissing = errors.New("consumer missing")

// ErrInventoryMissing is returned when the inventory of an existing commodity is not found.
var ErrInventoryMissing = errors.New("inventory missing")

// ErrInvalidCount is returned when a body is configured with a zero entity count.
var ErrInvalidCount = errors.New("commodity and consumer counts must be positive")

// Logger interface for soft failures.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Rand is the random source of the bodies. *rand.Rand from math/rand/v2 implements it;
// it must be safe for concurrent use when a body is shared by several workers.
type Rand interface {
	Int64N(n int64) int64
}

type globalRand struct{}

func (globalRand) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

// Config holds the entity counts ids are drawn from.
type Config struct {
	CommodityCount uint32
	ConsumerCount  uint32
}

// Option defines a functional option for configuring a body.
type Option func(*base)

// WithRand replaces the process wide random source.
func WithRand(r Rand) Option {
	return func(b *base) {
		b.rand = r
	}
}

// WithFaker replaces the generator of synthetic text.
func WithFaker(faker *gofakeit.Faker) Option {
	return func(b *base) {
		b.faker = faker
	}
}

// WithLogger sets the logger for the body.
func WithLogger(logger Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// WithClock replaces time.Now for updated_at and created_at values.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// base carries what every body needs.
type base struct {
	cfg    Config
	rand   Rand
	faker  *gofakeit.Faker
	logger Logger
	now    func() time.Time
}

func newBase(cfg Config, requireCounts bool, options []Option) (base, error) {
	if requireCounts && (cfg.CommodityCount == 0 || cfg.ConsumerCount == 0) {
		return base{}, ErrInvalidCount
	}

	b := base{
		cfg:   cfg,
		rand:  globalRand{},
		faker: gofakeit.New(0),
		now:   time.Now,
	}

	for _, option := range options {
		option(&b)
	}

	return b, nil
}

// between draws uniformly from [lo, hi].
func (b base) between(lo, hi int64) int64 {
	return lo + b.rand.Int64N(hi-lo+1)
}

func (b base) randomCommodityID() int64 {
	return b.between(1, int64(b.cfg.CommodityCount))
}

func (b base) randomConsumerID() int64 {
	return b.between(1, int64(b.cfg.ConsumerCount))
}

func (b base) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}
