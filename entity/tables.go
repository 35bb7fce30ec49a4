package entity

// DefaultTablePrefix is prepended to every table name unless configured otherwise.
const DefaultTablePrefix = "tiny_orders_"

// Column names shared by the query builders and the DDL.
const (
	ColID            = "id"
	ColTitle         = "title"
	ColPrice         = "price"
	ColDescription   = "description"
	ColName          = "name"
	ColCommodityID   = "commodity_id"
	ColConsumerID    = "consumer_id"
	ColInventory     = "inventory"
	ColSoldUnitPrice = "sold_unit_price"
	ColSoldNumber    = "sold_number"
	ColEvaluation    = "evaluation"
	ColUpdatedAt     = "updated_at"
	ColCreatedAt     = "created_at"
)

// Tables holds the resolved table names of the schema.
type Tables struct {
	Commodity  string
	Consumer   string
	Inventory  string
	Order      string
	Evaluation string
}

// TablesWithPrefix resolves all table names for the given prefix.
func TablesWithPrefix(prefix string) Tables {
	return Tables{
		Commodity:  prefix + "commodity",
		Consumer:   prefix + "consumer",
		Inventory:  prefix + "inventory",
		Order:      prefix + "order",
		Evaluation: prefix + "evaluation",
	}
}

// All returns the table names in creation order.
func (t Tables) All() []string {
	return []string{t.Commodity, t.Consumer, t.Evaluation, t.Inventory, t.Order}
}
