// Package metrics aggregates per-transaction samples into periodic latency percentile reports.
//
// Producers hand samples to an Aggregator through Record, which never blocks. A single
// consumer goroutine (Aggregator.Run) accumulates them and, once more than the report
// interval has passed since the previous report, emits a PercentileSnapshot as one
// console line. Closing the aggregator drains the remaining samples and flushes a final
// snapshot.
package metrics
