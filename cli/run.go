package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/leoppro/tiny-orders/bench"
	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/metrics/promadapter"
	"github.com/leoppro/tiny-orders/shutdown"
	"github.com/leoppro/tiny-orders/store"
)

const metricsShutdownTimeout = 5 * time.Second

// ErrMissingRateLimit is returned when run is started without a positive rate limit.
var ErrMissingRateLimit = errors.New("rate limit is required (--rate-limit or " + EnvPrefix + "_RATE_LIMIT)")

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the transaction mix and report latency percentiles every second",
		Long: "Run sell, evaluate and reprice transactions, or evaluate only with --downgrade, " +
			"at the given global rate until interrupted or --duration elapsed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rootOpts.settings()
			if err != nil {
				return err
			}

			cfg := bench.RunConfig{
				CommodityCount: rootOpts.config.GetUint32(flagCommodityCount),
				ConsumerCount:  rootOpts.config.GetUint32(flagConsumerCount),
				Concurrent:     s.Concurrent,
				RateLimit:      rootOpts.config.GetUint32(flagRateLimit),
				Downgrade:      rootOpts.config.GetBool(flagDowngrade),
				Duration:       rootOpts.config.GetDuration(flagDuration),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.RateLimit == 0 {
				return ErrMissingRateLimit
			}

			ctx, stop := shutdown.Notify(cmd.Context(), rootOpts.logger)
			defer stop()

			// Each service runs its own workers against the shared pool.
			maxConns := s.Concurrent*3 + 1
			if cfg.Downgrade {
				maxConns = s.Concurrent + 1
			}

			db, err := store.Open(ctx, s.DBURL, s.storeOptions(rootOpts.logger, maxConns)...)
			if err != nil {
				return err
			}
			defer rootOpts.closeStore(db)

			options := []bench.Option{
				bench.WithLogger(rootOpts.logger),
				bench.WithOutput(cmd.OutOrStdout()),
				bench.WithFormat(metrics.Format(s.Format)),
			}

			if addr := rootOpts.config.GetString(flagMetricsAddr); addr != "" {
				collector := promadapter.NewMetricsCollector()
				srv := rootOpts.serveMetrics(addr, collector)
				defer rootOpts.shutdownMetrics(srv)

				options = append(options, bench.WithMetricsCollector(collector))
			}

			return bench.Run(ctx, db, cfg, options...)
		},
	}

	cmd.Flags().Uint32(flagCommodityCount, 0, "number of commodities loaded by prepare")
	cmd.Flags().Uint32(flagConsumerCount, 0, "number of consumers loaded by prepare")
	cmd.Flags().Uint32(flagRateLimit, 0, "transaction attempts per second over all services (required)")
	cmd.Flags().Bool(flagDowngrade, false, "run evaluate transactions only")
	cmd.Flags().Duration(flagDuration, 0, "stop after this duration, 0 runs until interrupted")
	cmd.Flags().String(flagMetricsAddr, "", "serve prometheus metrics on this address, e.g. :9090")

	return cmd
}

func (o *RootOptions) serveMetrics(addr string, collector *promadapter.MetricsCollector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		o.logger.Info(logMsgMetricsListening, logAttrAddr, addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.logger.Error(logMsgMetricsFailed, logAttrAddr, addr, logAttrError, err.Error())
		}
	}()

	return srv
}

func (o *RootOptions) shutdownMetrics(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		o.logger.Warn(logMsgMetricsShutdown, logAttrError, err.Error())
	}
}
