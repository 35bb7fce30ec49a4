package helper

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/leoppro/tiny-orders/store"
)

// SQLiteURL returns a sqlite:// url pointing into a fresh temporary directory.
func SQLiteURL(t testing.TB) (string, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tiny-orders.db")

	return "sqlite://" + path, path
}

// NewSQLiteStore opens a store on a temporary SQLite file and creates the schema.
// The store is closed when the test ends.
func NewSQLiteStore(t testing.TB, options ...store.Option) (*store.Store, string) {
	t.Helper()

	url, path := SQLiteURL(t)

	st, err := store.Open(context.Background(), url, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.SetupSchema(context.Background()))

	return st, path
}

// OpenInspector opens a second read handle on the SQLite file at path.
func OpenInspector(t testing.TB, path string) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// OrderRow is the business part of an order row.
type OrderRow struct {
	ID            int64 `db:"id"`
	ConsumerID    int64 `db:"consumer_id"`
	CommodityID   int64 `db:"commodity_id"`
	SoldUnitPrice int64 `db:"sold_unit_price"`
	SoldNumber    int64 `db:"sold_number"`
}

// InventoryRow is the business part of an inventory row.
type InventoryRow struct {
	CommodityID int64 `db:"commodity_id"`
	Inventory   int64 `db:"inventory"`
}

// SelectOrders loads all orders from table.
func SelectOrders(t testing.TB, db *sqlx.DB, table string) []OrderRow {
	t.Helper()

	var rows []OrderRow
	require.NoError(t, db.Select(&rows,
		"SELECT id, consumer_id, commodity_id, sold_unit_price, sold_number FROM "+table+" ORDER BY id"))

	return rows
}

// SelectInventories loads all inventory rows from table.
func SelectInventories(t testing.TB, db *sqlx.DB, table string) []InventoryRow {
	t.Helper()

	var rows []InventoryRow
	require.NoError(t, db.Select(&rows,
		"SELECT commodity_id, inventory FROM "+table+" ORDER BY commodity_id"))

	return rows
}

// CommodityPrices maps commodity id to price.
func CommodityPrices(t testing.TB, db *sqlx.DB, table string) map[int64]int64 {
	t.Helper()

	rows, err := db.Queryx("SELECT id, price FROM " + table)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	prices := make(map[int64]int64)
	for rows.Next() {
		var id, price int64
		require.NoError(t, rows.Scan(&id, &price))
		prices[id] = price
	}
	require.NoError(t, rows.Err())

	return prices
}
