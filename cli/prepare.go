package cli

import (
	"github.com/spf13/cobra"

	"github.com/leoppro/tiny-orders/bench"
	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/store"
)

// NewPrepareCommand creates the prepare command.
func NewPrepareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Recreate the tables and load commodities, inventories and consumers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rootOpts.settings()
			if err != nil {
				return err
			}

			cfg := bench.PrepareConfig{
				CommodityCount: rootOpts.config.GetUint32(flagCommodityCount),
				ConsumerCount:  rootOpts.config.GetUint32(flagConsumerCount),
				TxnSize:        s.TxnSize,
				Concurrent:     s.Concurrent,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()

			db, err := store.Open(ctx, s.DBURL, s.storeOptions(rootOpts.logger, s.Concurrent+1)...)
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(db)

			return bench.Prepare(ctx, db, cfg,
				bench.WithLogger(rootOpts.logger),
				bench.WithOutput(cmd.OutOrStdout()),
				bench.WithFormat(metrics.Format(s.Format)))
		},
	}

	cmd.Flags().Uint32(flagCommodityCount, 0, "number of commodities to load, each with an inventory")
	cmd.Flags().Uint32(flagConsumerCount, 0, "number of consumers to load")

	return cmd
}

func (o *RootOptions) closeStore(db *store.Store) {
	if err := db.Close(); err != nil {
		o.logger.Warn(logMsgCloseFailed, logAttrError, err.Error())
	}
}
