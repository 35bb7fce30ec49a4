package workload

import (
	"context"

	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store"
)

// Evaluate appends a synthetic evaluation of a random commodity by a random consumer.
type Evaluate struct {
	base
}

// NewEvaluate creates the Evaluate body.
func NewEvaluate(cfg Config, options ...Option) (*Evaluate, error) {
	b, err := newBase(cfg, true, options)
	if err != nil {
		return nil, err
	}

	return &Evaluate{base: b}, nil
}

// Execute returns 1. Both the consumer and the commodity must exist.
func (e *Evaluate) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	consumerID := e.randomConsumerID()
	commodityID := e.randomCommodityID()

	if _, err := tx.FindConsumer(ctx, consumerID); err != nil {
		return 0, missing(err, ErrConsumerMissing, consumerID)
	}

	if _, err := tx.FindCommodity(ctx, commodityID); err != nil {
		return 0, missing(err, ErrCommodityMissing, commodityID)
	}

	evaluation := entity.NewFakeEvaluation(e.faker, consumerID, commodityID, e.now())
	if err := tx.InsertEvaluation(ctx, evaluation); err != nil {
		return 0, err
	}

	return 1, nil
}
