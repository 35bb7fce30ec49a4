package workload

import (
	"context"
	"errors"
	"fmt"

	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store"
)

const (
	minSoldNumber = 1
	maxSoldNumber = 5

	logMsgCommodityMissing = "can't find the commodity, retrying"
	logAttrCommodityID     = "commodity_id"
)

// Sell sells a random amount of a random commodity to a random consumer.
type Sell struct {
	base
}

// NewSell creates the Sell body.
func NewSell(cfg Config, options ...Option) (*Sell, error) {
	b, err := newBase(cfg, true, options)
	if err != nil {
		return nil, err
	}

	return &Sell{base: b}, nil
}

// Execute returns 2 after decrementing the inventory and appending an order.
// A missing commodity or an empty inventory is skipped with 0 rows.
// A missing inventory or consumer is an error.
func (s *Sell) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	consumerID := s.randomConsumerID()
	commodityID := s.randomCommodityID()

	commodity, err := tx.FindCommodity(ctx, commodityID)
	if errors.Is(err, store.ErrNotFound) {
		s.warn(logMsgCommodityMissing, logAttrCommodityID, commodityID)
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	inventory, err := tx.FindInventory(ctx, commodityID, true)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: commodity %d", ErrInventoryMissing, commodityID)
	}

	if err != nil {
		return 0, err
	}

	if inventory.Inventory <= 0 {
		return 0, nil
	}

	if _, err = tx.FindConsumer(ctx, consumerID); err != nil {
		return 0, missing(err, ErrConsumerMissing, consumerID)
	}

	soldNumber := min(s.between(minSoldNumber, maxSoldNumber), inventory.Inventory)
	now := s.now()

	inventory.Inventory -= soldNumber
	inventory.UpdatedAt = now

	if err = tx.UpdateInventory(ctx, inventory); err != nil {
		return 0, err
	}

	if err = tx.InsertOrder(ctx, entity.NewOrder(consumerID, commodity, soldNumber, now)); err != nil {
		return 0, err
	}

	return 2, nil
}

// missing maps store.ErrNotFound to the given sentinel and passes other errors through.
func missing(err, sentinel error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: id %d", sentinel, id)
	}

	return err
}
