package engine

import "golang.org/x/sync/errgroup"

// workSource hands budgets to workers. acquire blocks until a budget is available
// and returns false once the source is exhausted for that worker.
type workSource interface {
	acquire(worker int) (uint32, bool)
}

// runParallel starts workers goroutines that spend budgets from src until it is exhausted
// or spend fails. It waits for all workers and returns the first error.
// A failing worker does not cancel its siblings.
func runParallel(workers int, src workSource, spend func(worker int, budget uint32) error) error {
	var g errgroup.Group

	for worker := range workers {
		g.Go(func() error {
			for {
				budget, ok := src.acquire(worker)
				if !ok {
					return nil
				}

				if err := spend(worker, budget); err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}

// shareSource hands every worker exactly one precomputed share.
type shareSource struct {
	shares []uint32
	taken  []bool
}

func newShareSource(total uint32, workers int) *shareSource {
	shares := make([]uint32, workers)
	per := total / uint32(workers)

	for i := range shares {
		shares[i] = per
	}

	shares[workers-1] += total % uint32(workers)

	return &shareSource{shares: shares, taken: make([]bool, workers)}
}

// acquire is only ever called by the goroutine owning index worker.
func (s *shareSource) acquire(worker int) (uint32, bool) {
	if s.taken[worker] {
		return 0, false
	}

	s.taken[worker] = true

	return s.shares[worker], true
}

// tokenSource hands out tokens from a shared channel until it is closed.
type tokenSource struct {
	tokens <-chan uint32
}

func (s tokenSource) acquire(int) (uint32, bool) {
	token, ok := <-s.tokens
	return token, ok
}
