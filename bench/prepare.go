package bench

import (
	"context"
	"fmt"

	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/workload"
)

// Database is what the phases need from the storage layer. *store.Store implements it.
type Database interface {
	engine.Transactor
	Tables() entity.Tables
	RecreateTable(ctx context.Context, table string) error
}

// Prepare drops and recreates every table, then loads cfg.CommodityCount commodities, each
// with an inventory of 100000, and cfg.ConsumerCount consumers.
func Prepare(ctx context.Context, db Database, cfg PrepareConfig, options ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p := newPhase(options)

	for _, table := range db.Tables().All() {
		if err := db.RecreateTable(ctx, table); err != nil {
			return err
		}

		p.println(fmt.Sprintf("%s schema created", table))
	}

	p.println("finished setup schema")

	executor := engine.NewBatchExecutor(db, engine.WithBatchLogger(p.logger))
	loaderOptions := []workload.Option{workload.WithLogger(p.logger)}

	rows, err := executor.Run(ctx, engine.BatchJob{
		Name:    "commodity",
		Units:   cfg.CommodityCount,
		TxnSize: cfg.TxnSize,
		Workers: cfg.Concurrent,
		Body:    workload.NewCommodityLoader(loaderOptions...),
	})
	if err != nil {
		return fmt.Errorf("loading commodities: %w", err)
	}

	p.println(fmt.Sprintf("finished insert commodity and inventory, %d rows", rows))

	rows, err = executor.Run(ctx, engine.BatchJob{
		Name:    "consumer",
		Units:   cfg.ConsumerCount,
		TxnSize: cfg.TxnSize,
		Workers: cfg.Concurrent,
		Body:    workload.NewConsumerLoader(loaderOptions...),
	})
	if err != nil {
		return fmt.Errorf("loading consumers: %w", err)
	}

	p.println(fmt.Sprintf("finished insert consumer, %d rows", rows))

	return nil
}

func (p *phase) println(line string) {
	_, _ = fmt.Fprintln(p.out, line)
}
