// Package bench orchestrates the two phases of the benchmark.
//
// Prepare recreates the schema and bulk loads commodities with their inventories and
// consumers through an engine.BatchExecutor. Run starts a Limiter, one WorkerService per
// transaction type and a metrics.Aggregator, and returns once the limiter was stopped by
// cancellation, the configured duration or a fatal transaction error, and every worker
// has drained.
package bench
