package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store/internal/adapters"
)

// Tx is one open transaction. It is only valid inside the function passed to Store.InTx.
type Tx struct {
	tx    adapters.TxAdapter
	store *Store
}

// FindCommodity loads the commodity with the given id.
// It returns an error wrapping ErrNotFound when no such commodity exists.
func (t *Tx) FindCommodity(ctx context.Context, id int64) (entity.Commodity, error) {
	ds := t.store.dialect.
		From(t.store.tables.Commodity).
		Select(entity.ColID, entity.ColTitle, entity.ColPrice, entity.ColDescription).
		Where(goqu.C(entity.ColID).Eq(id)).
		Limit(1)

	var commodity entity.Commodity
	err := t.queryOne(ctx, ds, &commodity.ID, &commodity.Title, &commodity.Price, &commodity.Description)
	if err != nil {
		return entity.Commodity{}, notFoundContext(err, "commodity", id)
	}

	return commodity, nil
}

// FindInventory loads the inventory of the given commodity.
// With forUpdate the row is locked until the transaction ends on backends that support row locks.
func (t *Tx) FindInventory(ctx context.Context, commodityID int64, forUpdate bool) (entity.Inventory, error) {
	ds := t.store.dialect.
		From(t.store.tables.Inventory).
		Select(entity.ColCommodityID, entity.ColInventory).
		Where(goqu.C(entity.ColCommodityID).Eq(commodityID)).
		Limit(1)

	if forUpdate && t.store.supportsRowLocks() {
		ds = ds.ForUpdate(exp.Wait)
	}

	var inventory entity.Inventory
	if err := t.queryOne(ctx, ds, &inventory.CommodityID, &inventory.Inventory); err != nil {
		return entity.Inventory{}, notFoundContext(err, "inventory of commodity", commodityID)
	}

	return inventory, nil
}

// FindConsumer loads the consumer with the given id.
func (t *Tx) FindConsumer(ctx context.Context, id int64) (entity.Consumer, error) {
	ds := t.store.dialect.
		From(t.store.tables.Consumer).
		Select(entity.ColID, entity.ColName).
		Where(goqu.C(entity.ColID).Eq(id)).
		Limit(1)

	var consumer entity.Consumer
	if err := t.queryOne(ctx, ds, &consumer.ID, &consumer.Name); err != nil {
		return entity.Consumer{}, notFoundContext(err, "consumer", id)
	}

	return consumer, nil
}

// InsertCommodity inserts the commodity and returns the id the database assigned.
func (t *Tx) InsertCommodity(ctx context.Context, commodity entity.Commodity) (int64, error) {
	return t.insertReturningID(ctx, t.store.tables.Commodity, goqu.Record{
		entity.ColTitle:       commodity.Title,
		entity.ColPrice:       commodity.Price,
		entity.ColDescription: commodity.Description,
		entity.ColUpdatedAt:   t.store.timestamp(commodity.UpdatedAt),
		entity.ColCreatedAt:   t.store.timestamp(commodity.CreatedAt),
	})
}

// InsertConsumer inserts the consumer and returns the id the database assigned.
func (t *Tx) InsertConsumer(ctx context.Context, consumer entity.Consumer) (int64, error) {
	return t.insertReturningID(ctx, t.store.tables.Consumer, goqu.Record{
		entity.ColName:      consumer.Name,
		entity.ColUpdatedAt: t.store.timestamp(consumer.UpdatedAt),
		entity.ColCreatedAt: t.store.timestamp(consumer.CreatedAt),
	})
}

// InsertInventory inserts the inventory row of a commodity.
func (t *Tx) InsertInventory(ctx context.Context, inventory entity.Inventory) error {
	return t.insert(ctx, t.store.tables.Inventory, goqu.Record{
		entity.ColCommodityID: inventory.CommodityID,
		entity.ColInventory:   inventory.Inventory,
		entity.ColUpdatedAt:   t.store.timestamp(inventory.UpdatedAt),
		entity.ColCreatedAt:   t.store.timestamp(inventory.CreatedAt),
	})
}

// InsertOrder appends an order.
func (t *Tx) InsertOrder(ctx context.Context, order entity.Order) error {
	return t.insert(ctx, t.store.tables.Order, goqu.Record{
		entity.ColConsumerID:    order.ConsumerID,
		entity.ColCommodityID:   order.CommodityID,
		entity.ColSoldUnitPrice: order.SoldUnitPrice,
		entity.ColSoldNumber:    order.SoldNumber,
		entity.ColCreatedAt:     t.store.timestamp(order.CreatedAt),
	})
}

// InsertEvaluation appends an evaluation.
func (t *Tx) InsertEvaluation(ctx context.Context, evaluation entity.Evaluation) error {
	return t.insert(ctx, t.store.tables.Evaluation, goqu.Record{
		entity.ColConsumerID:  evaluation.ConsumerID,
		entity.ColCommodityID: evaluation.CommodityID,
		entity.ColEvaluation:  evaluation.Evaluation,
		entity.ColUpdatedAt:   t.store.timestamp(evaluation.UpdatedAt),
		entity.ColCreatedAt:   t.store.timestamp(evaluation.CreatedAt),
	})
}

// UpdateInventory writes the stock level and updated_at of the inventory row.
func (t *Tx) UpdateInventory(ctx context.Context, inventory entity.Inventory) error {
	ds := t.store.dialect.
		Update(t.store.tables.Inventory).
		Set(goqu.Record{
			entity.ColInventory: inventory.Inventory,
			entity.ColUpdatedAt: t.store.timestamp(inventory.UpdatedAt),
		}).
		Where(goqu.C(entity.ColCommodityID).Eq(inventory.CommodityID))

	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return t.buildFailed(err)
	}

	_, err = t.exec(ctx, sqlQuery)

	return err
}

// UpdateCommodityPrice writes the price and updated_at of the commodity.
func (t *Tx) UpdateCommodityPrice(ctx context.Context, commodity entity.Commodity) error {
	ds := t.store.dialect.
		Update(t.store.tables.Commodity).
		Set(goqu.Record{
			entity.ColPrice:     commodity.Price,
			entity.ColUpdatedAt: t.store.timestamp(commodity.UpdatedAt),
		}).
		Where(goqu.C(entity.ColID).Eq(commodity.ID))

	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return t.buildFailed(err)
	}

	_, err = t.exec(ctx, sqlQuery)

	return err
}

func (t *Tx) insert(ctx context.Context, table string, record goqu.Record) error {
	sqlQuery, _, err := t.store.dialect.Insert(table).Rows(record).ToSQL()
	if err != nil {
		return t.buildFailed(err)
	}

	_, err = t.exec(ctx, sqlQuery)

	return err
}

func (t *Tx) insertReturningID(ctx context.Context, table string, record goqu.Record) (int64, error) {
	ds := t.store.dialect.Insert(table).Rows(record)

	if t.store.supportsReturning() {
		var id int64
		if err := t.queryOne(ctx, ds.Returning(entity.ColID), &id); err != nil {
			return 0, err
		}

		return id, nil
	}

	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return 0, t.buildFailed(err)
	}

	result, err := t.exec(ctx, sqlQuery)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertID()
	if err != nil {
		return 0, errors.Join(ErrExecFailed, err)
	}

	return id, nil
}

// sqlBuilder is implemented by the goqu select and insert datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func (t *Tx) queryOne(ctx context.Context, ds sqlBuilder, dest ...any) error {
	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return t.buildFailed(err)
	}

	t.store.logDebug(logMsgSQLExecuted, logAttrQuery, sqlQuery)

	rows, err := t.tx.Query(ctx, sqlQuery)
	if err != nil {
		t.store.logError(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return errors.Join(ErrQueryFailed, err)
	}

	return t.store.scanSingleRow(rows, dest...)
}

func (t *Tx) exec(ctx context.Context, sqlQuery string) (adapters.DBResult, error) {
	t.store.logDebug(logMsgSQLExecuted, logAttrQuery, sqlQuery)

	result, err := t.tx.Exec(ctx, sqlQuery)
	if err != nil {
		t.store.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrExecFailed, err)
	}

	return result, nil
}

func (t *Tx) buildFailed(err error) error {
	t.store.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
	return errors.Join(ErrBuildQueryFailed, err)
}

func notFoundContext(err error, what string, id int64) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}

	return err
}
