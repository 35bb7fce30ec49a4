package workload

import (
	"context"

	"github.com/leoppro/tiny-orders/store"
)

const (
	minPrice = 1
	maxPrice = 1000
)

// Reprice sets a random commodity to a random price in [1, 1000].
type Reprice struct {
	base
}

// NewReprice creates the Reprice body.
func NewReprice(cfg Config, options ...Option) (*Reprice, error) {
	b, err := newBase(cfg, true, options)
	if err != nil {
		return nil, err
	}

	return &Reprice{base: b}, nil
}

// Execute returns 1. The commodity must exist.
func (r *Reprice) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	commodityID := r.randomCommodityID()

	commodity, err := tx.FindCommodity(ctx, commodityID)
	if err != nil {
		return 0, missing(err, ErrCommodityMissing, commodityID)
	}

	commodity.Price = r.between(minPrice, maxPrice)
	commodity.UpdatedAt = r.now()

	if err = tx.UpdateCommodityPrice(ctx, commodity); err != nil {
		return 0, err
	}

	return 1, nil
}
