package engine

import (
	"context"
	"time"

	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/store"
)

// ServiceOption defines a functional option for configuring a WorkerService.
type ServiceOption func(*WorkerService)

// WithServiceName names the service in logs.
func WithServiceName(name string) ServiceOption {
	return func(s *WorkerService) {
		s.name = name
	}
}

// WithServiceLogger sets the logger for the WorkerService.
func WithServiceLogger(logger Logger) ServiceOption {
	return func(s *WorkerService) {
		s.logger = logger
	}
}

// WithOnFatal registers a hook that is called with the error of every worker that stops on a
// transaction error. Callers use it to stop the Limiter so that sibling services drain.
func WithOnFatal(onFatal func(error)) ServiceOption {
	return func(s *WorkerService) {
		s.onFatal = onFatal
	}
}

// WorkerService runs one transaction body with a fixed number of workers gated by tokens.
type WorkerService struct {
	db      Transactor
	name    string
	logger  Logger
	onFatal func(error)
}

// NewWorkerService creates a WorkerService on db.
func NewWorkerService(db Transactor, options ...ServiceOption) *WorkerService {
	s := &WorkerService{db: db}

	for _, option := range options {
		option(s)
	}

	return s
}

// Run starts workers that receive tokens until the channel is closed and drained.
// For every token a worker makes attempts, each in its own transaction, until the rows
// changed reach the token's budget. Every committed attempt is recorded in sink.
// Transactions run under ctx. Run waits for all workers and returns the first error.
func (s *WorkerService) Run(ctx context.Context, tokens <-chan uint32, workers int, sink metrics.Sink, body TxBody) error {
	if workers <= 0 {
		return ErrInvalidWorkerCount
	}

	if body == nil {
		return ErrNilBody
	}

	return runParallel(workers, tokenSource{tokens: tokens}, func(worker int, budget uint32) error {
		err := s.spendToken(ctx, sink, body, budget)
		if err != nil {
			if s.logger != nil {
				s.logger.Error(logMsgWorkerFailed, logAttrService, s.name, logAttrWorker, worker, logAttrError, err.Error())
			}

			if s.onFatal != nil {
				s.onFatal(err)
			}
		}

		return err
	})
}

func (s *WorkerService) spendToken(ctx context.Context, sink metrics.Sink, body TxBody, budget uint32) error {
	for remaining := budget; remaining > 0; {
		start := time.Now()

		rows, err := s.db.InTx(ctx, func(tx *store.Tx) (uint32, error) {
			return body.Execute(ctx, tx)
		})
		if err != nil {
			return err
		}

		latency := time.Since(start)
		remaining -= min(rows, remaining)

		sink.Record(metrics.Sample{Rows: rows, LatencyMS: uint32(latency.Milliseconds())})
	}

	return nil
}
