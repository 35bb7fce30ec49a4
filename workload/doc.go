// Package workload contains the transaction bodies of the benchmark.
//
// The run phase mixes three bodies: Sell, Evaluate and Reprice. The prepare phase uses
// the two loaders, CommodityLoader and ConsumerLoader. Every body draws its ids uniformly
// from [1, count] of the configured entity counts and returns the number of rows it changed.
package workload
