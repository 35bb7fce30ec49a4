package metrics

import "time"

// Sample is the outcome of one committed transaction attempt.
type Sample struct {
	Rows      uint32
	LatencyMS uint32
}

// Sink accepts samples without blocking the caller.
type Sink interface {
	Record(sample Sample)
}

// MetricsCollector interface for forwarding samples and runtime counters to a metrics backend.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Metric names.
const (
	MetricTxnLatency    = "tiny_orders_txn_latency_seconds"
	MetricTxnCommitted  = "tiny_orders_txns_total"
	MetricRowsPerSecond = "tiny_orders_rows_per_second"
	MetricIssuedTokens  = "tiny_orders_issued_tokens_total"
	MetricDroppedTokens = "tiny_orders_dropped_tokens_total"
)
