package metrics

import (
	"slices"
	"time"
)

// Quantiles are the reported percentiles: P50, P80, P95, P99 and P999.
var Quantiles = [...]float64{0.50, 0.80, 0.95, 0.99, 0.999}

// PercentileSnapshot summarizes the latencies and rows of one report interval.
type PercentileSnapshot struct {
	At      time.Time `json:"at"`
	RunID   string    `json:"run_id,omitempty"`
	P50     uint32    `json:"p50_ms"`
	P80     uint32    `json:"p80_ms"`
	P95     uint32    `json:"p95_ms"`
	P99     uint32    `json:"p99_ms"`
	P999    uint32    `json:"p999_ms"`
	Max     uint32    `json:"max_ms"`
	Rows    uint64    `json:"rows"`
	Samples int       `json:"samples"`

	RowsPerSecond uint64 `json:"rows_per_second"`
}

// NearestRank returns the index of quantile q in a sorted buffer of length l: floor(l*q), clamped to l-1.
func NearestRank(l int, q float64) int {
	idx := int(float64(l) * q)
	if idx >= l {
		idx = l - 1
	}

	return idx
}

// ComputeSnapshot sorts latencies in place and derives the percentiles.
// elapsed is the length of the interval the samples were collected in.
// It returns false for an empty buffer.
func ComputeSnapshot(latencies []uint32, rows uint64, at time.Time, elapsed time.Duration) (PercentileSnapshot, bool) {
	l := len(latencies)
	if l == 0 {
		return PercentileSnapshot{}, false
	}

	slices.Sort(latencies)

	return PercentileSnapshot{
		At:      at,
		P50:     latencies[NearestRank(l, Quantiles[0])],
		P80:     latencies[NearestRank(l, Quantiles[1])],
		P95:     latencies[NearestRank(l, Quantiles[2])],
		P99:     latencies[NearestRank(l, Quantiles[3])],
		P999:    latencies[NearestRank(l, Quantiles[4])],
		Max:     latencies[l-1],
		Rows:    rows,
		Samples: l,

		RowsPerSecond: rowsPerSecond(rows, elapsed),
	}, true
}

func rowsPerSecond(rows uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return rows
	}

	return uint64(float64(rows) / elapsed.Seconds())
}
