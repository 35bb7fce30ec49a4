package engine_test

import (
	"context"
	"sync"

	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/store"
)

// fakeTransactor runs bodies without a database and counts committed transactions.
type fakeTransactor struct {
	mu        sync.Mutex
	committed int
}

func (f *fakeTransactor) InTx(_ context.Context, fn func(tx *store.Tx) (uint32, error)) (uint32, error) {
	rows, err := fn(nil)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	f.committed++
	f.mu.Unlock()

	return rows, nil
}

func (f *fakeTransactor) Committed() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.committed
}

// recordingSink keeps every sample.
type recordingSink struct {
	mu      sync.Mutex
	samples []metrics.Sample
}

func (s *recordingSink) Record(sample metrics.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, sample)
}

func (s *recordingSink) Samples() []metrics.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]metrics.Sample(nil), s.samples...)
}

func tokensOf(budgets ...uint32) <-chan uint32 {
	tokens := make(chan uint32, len(budgets))
	for _, budget := range budgets {
		tokens <- budget
	}
	close(tokens)

	return tokens
}
