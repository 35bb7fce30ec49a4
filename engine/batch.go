package engine

import (
	"context"
	"time"

	"github.com/leoppro/tiny-orders/store"
)

const defaultProgressInterval = time.Second

// BatchJob describes a one-shot bulk load.
// Units is the total number of body invocations. TxnSize is the number of rows after which
// a worker commits and opens the next transaction.
type BatchJob struct {
	Name    string
	Units   uint32
	TxnSize uint32
	Workers int
	Body    TxBody
}

// BatchOption defines a functional option for configuring a BatchExecutor.
type BatchOption func(*BatchExecutor)

// WithBatchLogger sets the logger that receives per-worker progress.
func WithBatchLogger(logger Logger) BatchOption {
	return func(b *BatchExecutor) {
		b.logger = logger
	}
}

// WithProgressInterval sets the minimum time between two progress lines of a worker.
func WithProgressInterval(interval time.Duration) BatchOption {
	return func(b *BatchExecutor) {
		b.progressInterval = interval
	}
}

// BatchExecutor runs a BatchJob with a fixed number of parallel workers.
type BatchExecutor struct {
	db               Transactor
	logger           Logger
	progressInterval time.Duration
}

// NewBatchExecutor creates a BatchExecutor on db.
func NewBatchExecutor(db Transactor, options ...BatchOption) *BatchExecutor {
	b := &BatchExecutor{
		db:               db,
		progressInterval: defaultProgressInterval,
	}

	for _, option := range options {
		option(b)
	}

	return b
}

// Run splits job.Units into job.Workers shares, the last worker takes the remainder,
// and returns the total rows written by committed transactions.
// It waits for all workers and returns the first transaction error.
func (b *BatchExecutor) Run(ctx context.Context, job BatchJob) (uint64, error) {
	if job.Workers <= 0 {
		return 0, ErrInvalidWorkerCount
	}

	if job.TxnSize == 0 {
		return 0, ErrInvalidTxnSize
	}

	if job.Body == nil {
		return 0, ErrNilBody
	}

	if job.Units == 0 {
		return 0, nil
	}

	written := make([]uint64, job.Workers)

	err := runParallel(job.Workers, newShareSource(job.Units, job.Workers), func(worker int, share uint32) error {
		return b.spendShare(ctx, job, worker, share, &written[worker])
	})

	var total uint64
	for _, rows := range written {
		total += rows
	}

	return total, err
}

func (b *BatchExecutor) spendShare(ctx context.Context, job BatchJob, worker int, share uint32, written *uint64) error {
	if share == 0 {
		return nil
	}

	var sinceReport uint64
	lastReport := time.Now()

	for remaining := share; remaining > 0; {
		var invoked uint32

		rows, err := b.db.InTx(ctx, func(tx *store.Tx) (uint32, error) {
			var txnRows uint32

			for invoked = 0; invoked < remaining && txnRows < job.TxnSize; invoked++ {
				n, err := job.Body.Execute(ctx, tx)
				if err != nil {
					return 0, err
				}

				txnRows += n
			}

			return txnRows, nil
		})
		if err != nil {
			b.log(logMsgWorkerFailed, logAttrService, job.Name, logAttrWorker, worker, logAttrError, err.Error())
			return err
		}

		remaining -= invoked
		*written += uint64(rows)
		sinceReport += uint64(rows)

		if time.Since(lastReport) >= b.progressInterval {
			b.log(logMsgBatchProgress, logAttrService, job.Name, logAttrWorker, worker, logAttrRows, sinceReport)
			sinceReport = 0
			lastReport = time.Now()
		}
	}

	b.log(logMsgBatchFinished, logAttrService, job.Name, logAttrWorker, worker, logAttrTotalRows, *written)

	return nil
}

func (b *BatchExecutor) log(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}
