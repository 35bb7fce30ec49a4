package engine

import "errors"

// ErrInvalidWorkerCount is returned when an executor is asked to run without workers.
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// ErrInvalidTxnSize is returned when a batch job has a zero transaction size.
var ErrInvalidTxnSize = errors.New("transaction size must be positive")

// ErrNilBody is returned when a job has no transaction body.
var ErrNilBody = errors.New("transaction body must not be nil")

// ErrInvalidTickRate is returned when WithTickRate receives zero.
var ErrInvalidTickRate = errors.New("tick rate must be positive")

// ErrInvalidQueueCapacity is returned when WithQueueCapacity receives a non-positive capacity.
var ErrInvalidQueueCapacity = errors.New("queue capacity must be positive")

// ErrInvalidSendTimeout is returned when WithSendTimeout receives a non-positive timeout.
var ErrInvalidSendTimeout = errors.New("send timeout must be positive")
