package bench

import (
	"errors"
	"time"
)

// ErrInvalidConcurrency is returned when the worker count is not positive.
var ErrInvalidConcurrency = errors.New("concurrent must be positive")

// ErrInvalidTxnSize is returned when the batch transaction size is zero.
var ErrInvalidTxnSize = errors.New("txn size must be positive")

// ErrInvalidCounts is returned when run is configured without commodities or consumers.
var ErrInvalidCounts = errors.New("commodity count and consumer count must be positive")

// ErrInvalidDuration is returned for a negative run duration.
var ErrInvalidDuration = errors.New("duration must not be negative")

// PrepareConfig configures the prepare phase.
type PrepareConfig struct {
	CommodityCount uint32
	ConsumerCount  uint32
	TxnSize        uint32
	Concurrent     int
}

// Validate checks the configuration.
func (c PrepareConfig) Validate() error {
	if c.Concurrent <= 0 {
		return ErrInvalidConcurrency
	}

	if c.TxnSize == 0 {
		return ErrInvalidTxnSize
	}

	return nil
}

// RunConfig configures the run phase.
// RateLimit is the global number of transaction attempts per second over all services.
// A zero Duration runs until the context is canceled.
type RunConfig struct {
	CommodityCount uint32
	ConsumerCount  uint32
	Concurrent     int
	RateLimit      uint32
	Downgrade      bool
	Duration       time.Duration
}

// Validate checks the configuration.
func (c RunConfig) Validate() error {
	if c.Concurrent <= 0 {
		return ErrInvalidConcurrency
	}

	if c.CommodityCount == 0 || c.ConsumerCount == 0 {
		return ErrInvalidCounts
	}

	if c.Duration < 0 {
		return ErrInvalidDuration
	}

	return nil
}

// Mode returns "downgrade" or "normal".
func (c RunConfig) Mode() string {
	if c.Downgrade {
		return modeDowngrade
	}

	return modeNormal
}
