// Package engine runs transaction bodies in parallel against a Transactor.
//
// Two executors share one bounded parallel runner:
//
//   - BatchExecutor performs a fixed amount of work once, split into per-worker shares,
//     committing every TxnSize rows. It loads the schema during prepare.
//   - WorkerService performs work gated by tokens minted by a Limiter, one transaction per
//     attempt, and reports every committed attempt as a metrics.Sample.
//
// A worker that hits a storage error stops. The executor waits for all of its workers and
// returns the first error.
package engine
