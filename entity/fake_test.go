package entity_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/leoppro/tiny-orders/entity"
)

func Test_NewFakeCommodity_DrawsPriceWithinRange(t *testing.T) {
	// setup
	faker := gofakeit.New(42)
	now := time.Now()

	for range 1000 {
		// act
		commodity := entity.NewFakeCommodity(faker, now)

		// assert
		assert.GreaterOrEqual(t, commodity.Price, int64(1))
		assert.LessOrEqual(t, commodity.Price, int64(999))
		assert.NotEmpty(t, commodity.Title)
		assert.NotEmpty(t, commodity.Description)
		assert.Zero(t, commodity.ID)
		assert.Equal(t, now, commodity.CreatedAt)
		assert.Equal(t, now, commodity.UpdatedAt)
	}
}

func Test_NewInventory_StartsAtInitialInventory(t *testing.T) {
	// act
	inventory := entity.NewInventory(7, time.Now())

	// assert
	assert.Equal(t, int64(7), inventory.CommodityID)
	assert.Equal(t, int64(100000), inventory.Inventory)
}

func Test_NewOrder_SnapshotsCommodityPrice(t *testing.T) {
	// arrange
	commodity := entity.Commodity{ID: 3, Price: 417}

	// act
	order := entity.NewOrder(9, commodity, 4, time.Now())

	// assert
	assert.Equal(t, int64(9), order.ConsumerID)
	assert.Equal(t, int64(3), order.CommodityID)
	assert.Equal(t, int64(417), order.SoldUnitPrice)
	assert.Equal(t, int64(4), order.SoldNumber)
}

func Test_TablesWithPrefix_ResolvesAllTables(t *testing.T) {
	// act
	tables := entity.TablesWithPrefix(entity.DefaultTablePrefix)

	// assert
	assert.Equal(t, []string{
		"tiny_orders_commodity",
		"tiny_orders_consumer",
		"tiny_orders_evaluation",
		"tiny_orders_inventory",
		"tiny_orders_order",
	}, tables.All())
}
