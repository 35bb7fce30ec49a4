package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leoppro/tiny-orders/metrics"
)

func Test_NearestRank(t *testing.T) {
	testCases := []struct {
		l        int
		q        float64
		expected int
	}{
		{l: 1, q: 0.50, expected: 0},
		{l: 1, q: 0.999, expected: 0},
		{l: 3, q: 0.50, expected: 1},
		{l: 3, q: 0.80, expected: 2},
		{l: 3, q: 0.999, expected: 2},
		{l: 10, q: 0.80, expected: 8},
		{l: 100, q: 0.999, expected: 99},
		{l: 1000, q: 0.95, expected: 950},
		{l: 1000, q: 0.999, expected: 999},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, metrics.NearestRank(tc.l, tc.q), "l=%d q=%v", tc.l, tc.q)
	}
}

func Test_ComputeSnapshot_When_BufferIsEmpty(t *testing.T) {
	// act
	_, ok := metrics.ComputeSnapshot(nil, 0, time.Now(), time.Second)

	// assert
	assert.False(t, ok)
}

func Test_ComputeSnapshot_SortsAndPicksNearestRank(t *testing.T) {
	// arrange
	latencies := make([]uint32, 0, 1000)
	for i := 1000; i >= 1; i-- {
		latencies = append(latencies, uint32(i))
	}

	// act
	snapshot, ok := metrics.ComputeSnapshot(latencies, 4000, time.Now(), 2*time.Second)

	// assert
	assert.True(t, ok)
	assert.Equal(t, uint32(501), snapshot.P50)
	assert.Equal(t, uint32(801), snapshot.P80)
	assert.Equal(t, uint32(951), snapshot.P95)
	assert.Equal(t, uint32(991), snapshot.P99)
	assert.Equal(t, uint32(1000), snapshot.P999)
	assert.Equal(t, uint32(1000), snapshot.Max)
	assert.Equal(t, 1000, snapshot.Samples)
	assert.Equal(t, uint64(4000), snapshot.Rows)
	assert.Equal(t, uint64(2000), snapshot.RowsPerSecond)
}

func Test_ComputeSnapshot_When_SingleSample(t *testing.T) {
	// act
	snapshot, ok := metrics.ComputeSnapshot([]uint32{7}, 2, time.Now(), 0)

	// assert
	assert.True(t, ok)
	assert.Equal(t, metrics.PercentileSnapshot{
		At: snapshot.At, P50: 7, P80: 7, P95: 7, P99: 7, P999: 7, Max: 7, Rows: 2, Samples: 1, RowsPerSecond: 2,
	}, snapshot)
}
