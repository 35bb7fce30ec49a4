package engine_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/store"
)

var errSellFailed = errors.New("sell failed")

func Test_WorkerService_SpendsEveryToken(t *testing.T) {
	// setup
	db := &fakeTransactor{}
	sink := &recordingSink{}
	var calls atomic.Int64

	// act
	err := engine.NewWorkerService(db).Run(context.Background(), tokensOf(3, 2, 4), 2, sink, countingBody(1, &calls))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(9), calls.Load())
	assert.Len(t, sink.Samples(), 9)
	assert.Equal(t, 9, db.Committed())
}

func Test_WorkerService_FloorsRemainingBudgetAtZero(t *testing.T) {
	// setup
	sink := &recordingSink{}
	var calls atomic.Int64

	// act
	err := engine.NewWorkerService(&fakeTransactor{}).Run(context.Background(), tokensOf(3), 1, sink, countingBody(2, &calls))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())

	for _, sample := range sink.Samples() {
		assert.Equal(t, uint32(2), sample.Rows)
	}
}

func Test_WorkerService_RetriesZeroRowAttempts(t *testing.T) {
	// setup
	sink := &recordingSink{}
	var calls atomic.Int64
	body := engine.TxBodyFunc(func(_ context.Context, _ *store.Tx) (uint32, error) {
		if calls.Add(1)%2 == 1 {
			return 0, nil
		}

		return 2, nil
	})

	// act
	err := engine.NewWorkerService(&fakeTransactor{}).Run(context.Background(), tokensOf(4), 1, sink, body)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(4), calls.Load())
	assert.Len(t, sink.Samples(), 4)
}

func Test_WorkerService_When_TokenStreamIsClosed(t *testing.T) {
	// setup
	var calls atomic.Int64

	// act
	err := engine.NewWorkerService(&fakeTransactor{}).Run(context.Background(), tokensOf(), 4, &recordingSink{}, countingBody(1, &calls))

	// assert
	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func Test_WorkerService_StopsWorker_And_CallsOnFatal_When_TransactionFails(t *testing.T) {
	// setup
	var fatal atomic.Int64
	service := engine.NewWorkerService(&fakeTransactor{},
		engine.WithServiceName("sell"),
		engine.WithOnFatal(func(err error) {
			assert.ErrorIs(t, err, errSellFailed)
			fatal.Add(1)
		}))

	body := engine.TxBodyFunc(func(_ context.Context, _ *store.Tx) (uint32, error) {
		return 0, errSellFailed
	})

	// act
	err := service.Run(context.Background(), tokensOf(1, 1, 1), 3, &recordingSink{}, body)

	// assert
	assert.ErrorIs(t, err, errSellFailed)
	assert.Equal(t, int64(3), fatal.Load())
}

func Test_WorkerService_When_ArgumentsAreInvalid(t *testing.T) {
	var calls atomic.Int64
	service := engine.NewWorkerService(&fakeTransactor{})

	err := service.Run(context.Background(), tokensOf(), 0, &recordingSink{}, countingBody(1, &calls))
	assert.ErrorIs(t, err, engine.ErrInvalidWorkerCount)

	err = service.Run(context.Background(), tokensOf(), 1, &recordingSink{}, nil)
	assert.ErrorIs(t, err, engine.ErrNilBody)
}
