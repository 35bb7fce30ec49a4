package entity

import "time"

// InitialInventory is the stock level every commodity starts with.
const InitialInventory int64 = 100000

// Commodity is a sellable item.
type Commodity struct {
	ID          int64
	Title       string
	Price       int64
	Description string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// Consumer is a buyer.
type Consumer struct {
	ID        int64
	Name      string
	UpdatedAt time.Time
	CreatedAt time.Time
}

// Inventory holds the stock level of exactly one commodity.
// Inventory never drops below zero.
type Inventory struct {
	CommodityID int64
	Inventory   int64
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// Order records one sale. SoldUnitPrice is the commodity price at the time of the sale.
type Order struct {
	ID            int64
	ConsumerID    int64
	CommodityID   int64
	SoldUnitPrice int64
	SoldNumber    int64
	CreatedAt     time.Time
}

// Evaluation is a free-text review of a commodity by a consumer.
type Evaluation struct {
	ID          int64
	ConsumerID  int64
	CommodityID int64
	Evaluation  string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}
