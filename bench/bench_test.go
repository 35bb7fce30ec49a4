package bench_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoppro/tiny-orders/bench"
	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/store"
	"github.com/leoppro/tiny-orders/testutil/helper"
	"github.com/leoppro/tiny-orders/workload"
)

func prepared(t *testing.T, commodities, consumers uint32) (*store.Store, string) {
	t.Helper()

	st, path := helper.NewSQLiteStore(t)
	err := bench.Prepare(context.Background(), st, bench.PrepareConfig{
		CommodityCount: commodities, ConsumerCount: consumers, TxnSize: 4, Concurrent: 4,
	}, bench.WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	return st, path
}

func count(t *testing.T, st *store.Store, table string) int64 {
	t.Helper()

	n, err := st.Count(context.Background(), table)
	require.NoError(t, err)

	return n
}

func Test_Prepare_LoadsExactlyTheRequestedRows(t *testing.T) {
	// setup
	st, path := helper.NewSQLiteStore(t)
	var out bytes.Buffer

	// act
	err := bench.Prepare(context.Background(), st, bench.PrepareConfig{
		CommodityCount: 10, ConsumerCount: 5, TxnSize: 1024, Concurrent: 4,
	}, bench.WithOutput(&out))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(10), count(t, st, st.Tables().Commodity))
	assert.Equal(t, int64(10), count(t, st, st.Tables().Inventory))
	assert.Equal(t, int64(5), count(t, st, st.Tables().Consumer))
	assert.Zero(t, count(t, st, st.Tables().Order))
	assert.Zero(t, count(t, st, st.Tables().Evaluation))

	for _, inventory := range helper.SelectInventories(t, helper.OpenInspector(t, path), st.Tables().Inventory) {
		assert.Equal(t, entity.InitialInventory, inventory.Inventory)
	}

	for _, table := range st.Tables().All() {
		assert.Contains(t, out.String(), table+" schema created")
	}
	assert.Contains(t, out.String(), "finished insert commodity and inventory, 20 rows")
	assert.Contains(t, out.String(), "finished insert consumer, 5 rows")
}

func Test_Prepare_When_ConfigIsInvalid(t *testing.T) {
	st, _ := helper.NewSQLiteStore(t)

	err := bench.Prepare(context.Background(), st, bench.PrepareConfig{TxnSize: 1, Concurrent: 0})
	assert.ErrorIs(t, err, bench.ErrInvalidConcurrency)

	err = bench.Prepare(context.Background(), st, bench.PrepareConfig{TxnSize: 0, Concurrent: 1})
	assert.ErrorIs(t, err, bench.ErrInvalidTxnSize)
}

func Test_Run_DowngradeMode_OnlyAppendsEvaluations(t *testing.T) {
	// setup
	st, _ := prepared(t, 10, 5)
	spy := helper.NewMetricsCollectorSpy()
	var out bytes.Buffer

	// act
	err := bench.Run(context.Background(), st, bench.RunConfig{
		CommodityCount: 10, ConsumerCount: 5, Concurrent: 2, RateLimit: 100, Downgrade: true, Duration: 1500 * time.Millisecond,
	}, bench.WithOutput(&out), bench.WithMetricsCollector(spy))

	// assert
	require.NoError(t, err)
	assert.Positive(t, count(t, st, st.Tables().Evaluation))
	assert.Zero(t, count(t, st, st.Tables().Order))
	assert.Contains(t, out.String(), "Running with downgrade mode")
	assert.GreaterOrEqual(t, strings.Count(out.String(), "Txn Execute Time("), 1)
	assert.Equal(t, map[string]string{"mode": "downgrade"}, spy.LastLabels(metrics.MetricTxnCommitted))
	assert.Equal(t, int(count(t, st, st.Tables().Evaluation)), spy.CounterValue(metrics.MetricTxnCommitted))
}

func Test_Run_NormalMode_RunsTheFullMix(t *testing.T) {
	// setup
	st, path := prepared(t, 10, 5)
	var out bytes.Buffer

	// act
	err := bench.Run(context.Background(), st, bench.RunConfig{
		CommodityCount: 10, ConsumerCount: 5, Concurrent: 2, RateLimit: 150, Duration: time.Second,
	}, bench.WithOutput(&out), bench.WithFormat(metrics.FormatJSON), bench.WithRunID("run-42"))

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Running with normal mode")
	assert.Contains(t, out.String(), `"run_id":"run-42"`)
	assert.Positive(t, count(t, st, st.Tables().Order))
	assert.Positive(t, count(t, st, st.Tables().Evaluation))

	inspector := helper.OpenInspector(t, path)
	for _, inventory := range helper.SelectInventories(t, inspector, st.Tables().Inventory) {
		assert.GreaterOrEqual(t, inventory.Inventory, int64(0))
	}
	for _, order := range helper.SelectOrders(t, inspector, st.Tables().Order) {
		assert.GreaterOrEqual(t, order.SoldNumber, int64(1))
		assert.GreaterOrEqual(t, order.SoldUnitPrice, int64(1))
		assert.LessOrEqual(t, order.CommodityID, int64(10))
		assert.LessOrEqual(t, order.ConsumerID, int64(5))
	}
}

func Test_Run_Stops_When_ContextIsCanceled(t *testing.T) {
	// setup
	st, _ := prepared(t, 3, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	// act
	done := make(chan error, 1)
	go func() {
		done <- bench.Run(ctx, st, bench.RunConfig{
			CommodityCount: 3, ConsumerCount: 3, Concurrent: 1, RateLimit: 50, Downgrade: true,
		}, bench.WithOutput(&bytes.Buffer{}))
	}()

	// assert
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}
}

func Test_Run_Stops_And_ReturnsError_When_AServiceFails(t *testing.T) {
	// setup
	st, _ := prepared(t, 2, 2)

	// act
	done := make(chan error, 1)
	go func() {
		done <- bench.Run(context.Background(), st, bench.RunConfig{
			CommodityCount: 1000, ConsumerCount: 2, Concurrent: 2, RateLimit: 200,
		}, bench.WithOutput(&bytes.Buffer{}), bench.WithLimiterOptions(engine.WithTickRate(100)))
	}()

	// assert
	select {
	case err := <-done:
		assert.ErrorIs(t, err, workload.ErrCommodityMissing)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after a fatal transaction error")
	}
}

func Test_Run_When_ConfigIsInvalid(t *testing.T) {
	st, _ := helper.NewSQLiteStore(t)

	err := bench.Run(context.Background(), st, bench.RunConfig{CommodityCount: 1, ConsumerCount: 1})
	assert.ErrorIs(t, err, bench.ErrInvalidConcurrency)

	err = bench.Run(context.Background(), st, bench.RunConfig{CommodityCount: 0, ConsumerCount: 1, Concurrent: 1})
	assert.ErrorIs(t, err, bench.ErrInvalidCounts)

	err = bench.Run(context.Background(), st, bench.RunConfig{CommodityCount: 1, ConsumerCount: 1, Concurrent: 1, Duration: -time.Second})
	assert.ErrorIs(t, err, bench.ErrInvalidDuration)
}
