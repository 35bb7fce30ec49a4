package workload

import (
	"context"

	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store"
)

// CommodityLoader inserts one synthetic commodity together with its initial inventory.
type CommodityLoader struct {
	base
}

// NewCommodityLoader creates the commodity loader of the prepare phase.
func NewCommodityLoader(options ...Option) *CommodityLoader {
	b, _ := newBase(Config{}, false, options)
	return &CommodityLoader{base: b}
}

// Execute returns 2.
func (l *CommodityLoader) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	now := l.now()

	id, err := tx.InsertCommodity(ctx, entity.NewFakeCommodity(l.faker, now))
	if err != nil {
		return 0, err
	}

	if err = tx.InsertInventory(ctx, entity.NewInventory(id, now)); err != nil {
		return 0, err
	}

	return 2, nil
}

// ConsumerLoader inserts one synthetic consumer.
type ConsumerLoader struct {
	base
}

// NewConsumerLoader creates the consumer loader of the prepare phase.
func NewConsumerLoader(options ...Option) *ConsumerLoader {
	b, _ := newBase(Config{}, false, options)
	return &ConsumerLoader{base: b}
}

// Execute returns 1.
func (l *ConsumerLoader) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	if _, err := tx.InsertConsumer(ctx, entity.NewFakeConsumer(l.faker, l.now())); err != nil {
		return 0, err
	}

	return 1, nil
}
