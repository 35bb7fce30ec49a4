package engine_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store"
	"github.com/leoppro/tiny-orders/testutil/helper"
)

var errInsertFailed = errors.New("insert failed")

func countingBody(rowsPerCall uint32, calls *atomic.Int64) engine.TxBody {
	return engine.TxBodyFunc(func(_ context.Context, _ *store.Tx) (uint32, error) {
		calls.Add(1)
		return rowsPerCall, nil
	})
}

func Test_BatchExecutor_SplitsUnits_And_CommitsPerTxnSize(t *testing.T) {
	// setup
	db := &fakeTransactor{}
	logger, spy := helper.NewSpyLogger()
	executor := engine.NewBatchExecutor(db, engine.WithBatchLogger(logger))

	var calls atomic.Int64

	// act
	rows, err := executor.Run(context.Background(), engine.BatchJob{
		Name: "commodity", Units: 10, TxnSize: 4, Workers: 4, Body: countingBody(2, &calls),
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rows)
	assert.Equal(t, int64(10), calls.Load())
	assert.Equal(t, 5, db.Committed())

	var perWorker []int64
	for _, value := range spy.AttrValues("batch worker finished", "total_rows") {
		perWorker = append(perWorker, int64(value.Uint64()))
	}
	assert.ElementsMatch(t, []int64{4, 4, 4, 8}, perWorker)
}

func Test_BatchExecutor_When_WorkersExceedUnits(t *testing.T) {
	// setup
	db := &fakeTransactor{}
	executor := engine.NewBatchExecutor(db)

	var calls atomic.Int64

	// act
	rows, err := executor.Run(context.Background(), engine.BatchJob{
		Units: 3, TxnSize: 1024, Workers: 4, Body: countingBody(1, &calls),
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rows)
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, 1, db.Committed())
}

func Test_BatchExecutor_When_UnitsIsZero(t *testing.T) {
	// setup
	var calls atomic.Int64

	// act
	rows, err := engine.NewBatchExecutor(&fakeTransactor{}).Run(context.Background(), engine.BatchJob{
		Units: 0, TxnSize: 1, Workers: 2, Body: countingBody(1, &calls),
	})

	// assert
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.Zero(t, calls.Load())
}

func Test_BatchExecutor_When_JobIsInvalid(t *testing.T) {
	var calls atomic.Int64
	executor := engine.NewBatchExecutor(&fakeTransactor{})

	_, err := executor.Run(context.Background(), engine.BatchJob{Units: 1, TxnSize: 1, Workers: 0, Body: countingBody(1, &calls)})
	assert.ErrorIs(t, err, engine.ErrInvalidWorkerCount)

	_, err = executor.Run(context.Background(), engine.BatchJob{Units: 1, TxnSize: 0, Workers: 1, Body: countingBody(1, &calls)})
	assert.ErrorIs(t, err, engine.ErrInvalidTxnSize)

	_, err = executor.Run(context.Background(), engine.BatchJob{Units: 1, TxnSize: 1, Workers: 1})
	assert.ErrorIs(t, err, engine.ErrNilBody)
}

func Test_BatchExecutor_ReturnsFirstError_And_JoinsAllWorkers(t *testing.T) {
	// setup
	db := &fakeTransactor{}
	executor := engine.NewBatchExecutor(db)

	var calls atomic.Int64
	body := engine.TxBodyFunc(func(_ context.Context, _ *store.Tx) (uint32, error) {
		if calls.Add(1) == 3 {
			return 0, errInsertFailed
		}

		return 1, nil
	})

	// act
	rows, err := executor.Run(context.Background(), engine.BatchJob{
		Units: 40, TxnSize: 1, Workers: 4, Body: body,
	})

	// assert
	assert.ErrorIs(t, err, errInsertFailed)
	assert.Equal(t, uint64(db.Committed()), rows)
	assert.Less(t, rows, uint64(40))
	assert.GreaterOrEqual(t, rows, uint64(30))
}

func Test_BatchExecutor_LogsProgress(t *testing.T) {
	// setup
	logger, spy := helper.NewSpyLogger()
	executor := engine.NewBatchExecutor(&fakeTransactor{},
		engine.WithBatchLogger(logger),
		engine.WithProgressInterval(time.Nanosecond))

	var calls atomic.Int64

	// act
	_, err := executor.Run(context.Background(), engine.BatchJob{
		Units: 6, TxnSize: 2, Workers: 1, Body: countingBody(1, &calls),
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, spy.CountLogs(slog.LevelInfo, "inserted rows"))
}

func Test_BatchExecutor_LoadsConsumersIntoSQLite(t *testing.T) {
	// setup
	ctx := context.Background()
	st, _ := helper.NewSQLiteStore(t)
	executor := engine.NewBatchExecutor(st)

	body := engine.TxBodyFunc(func(ctx context.Context, tx *store.Tx) (uint32, error) {
		now := time.Now()
		if _, err := tx.InsertConsumer(ctx, entity.Consumer{Name: "n", UpdatedAt: now, CreatedAt: now}); err != nil {
			return 0, err
		}

		return 1, nil
	})

	// act
	rows, err := executor.Run(ctx, engine.BatchJob{Units: 25, TxnSize: 10, Workers: 4, Body: body})

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint64(25), rows)

	count, err := st.Count(ctx, st.Tables().Consumer)
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
}
