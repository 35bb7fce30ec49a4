package entity

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	minFakePrice         = 1
	maxFakePrice         = 999
	titleWordCount       = 5
	descriptionWordCount = 30
	evaluationWordCount  = 30
)

// NewFakeCommodity builds a commodity with a random title, description and a price in [1, 999].
// The ID is assigned by the database on insert.
func NewFakeCommodity(faker *gofakeit.Faker, now time.Time) Commodity {
	return Commodity{
		Title:       faker.HipsterSentence(titleWordCount),
		Price:       int64(faker.Number(minFakePrice, maxFakePrice)),
		Description: faker.HipsterSentence(descriptionWordCount),
		UpdatedAt:   now,
		CreatedAt:   now,
	}
}

// NewFakeConsumer builds a consumer with a random full name.
func NewFakeConsumer(faker *gofakeit.Faker, now time.Time) Consumer {
	return Consumer{
		Name:      faker.Name(),
		UpdatedAt: now,
		CreatedAt: now,
	}
}

// NewFakeEvaluation builds an evaluation of commodityID written by consumerID.
func NewFakeEvaluation(faker *gofakeit.Faker, consumerID, commodityID int64, now time.Time) Evaluation {
	return Evaluation{
		ConsumerID:  consumerID,
		CommodityID: commodityID,
		Evaluation:  faker.HipsterSentence(evaluationWordCount),
		UpdatedAt:   now,
		CreatedAt:   now,
	}
}

// NewInventory builds the initial inventory row of a freshly inserted commodity.
func NewInventory(commodityID int64, now time.Time) Inventory {
	return Inventory{
		CommodityID: commodityID,
		Inventory:   InitialInventory,
		UpdatedAt:   now,
		CreatedAt:   now,
	}
}

// NewOrder builds an order that snapshots the unit price of the sold commodity.
func NewOrder(consumerID int64, commodity Commodity, soldNumber int64, now time.Time) Order {
	return Order{
		ConsumerID:    consumerID,
		CommodityID:   commodity.ID,
		SoldUnitPrice: commodity.Price,
		SoldNumber:    soldNumber,
		CreatedAt:     now,
	}
}
