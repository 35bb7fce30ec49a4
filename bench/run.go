package bench

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/leoppro/tiny-orders/engine"
	"github.com/leoppro/tiny-orders/metrics"
	"github.com/leoppro/tiny-orders/workload"
)

const (
	modeNormal    = "normal"
	modeDowngrade = "downgrade"

	serviceSell     = "sell"
	serviceEvaluate = "evaluate"
	serviceReprice  = "reprice"

	logMsgRunStarted     = "run started"
	logMsgRunFinished    = "run finished"
	logMsgServiceFailed  = "service failed, stopping the limiter"
	logAttrRunID         = "run_id"
	logAttrMode          = "mode"
	logAttrRateLimit     = "rate_limit"
	logAttrConcurrent    = "concurrent"
	logAttrIssuedTokens  = "issued_tokens"
	logAttrDroppedTokens = "dropped_tokens"
	logAttrReports       = "reports"
	logAttrError         = "error"
)

type service struct {
	name string
	body engine.TxBody
}

// Run drives the transaction mix until ctx is canceled, cfg.Duration elapsed or a
// transaction fails. Downgrade mode runs Evaluate only, normal mode runs Sell, Evaluate
// and Reprice, each with cfg.Concurrent workers, all sharing one token stream.
//
// Only token minting observes ctx. Transactions already started are never aborted.
func Run(ctx context.Context, db engine.Transactor, cfg RunConfig, options ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p := newPhase(options)

	services, err := p.services(cfg)
	if err != nil {
		return err
	}

	limiterOptions := append([]engine.LimiterOption{
		engine.WithLimiterLogger(p.logger),
		engine.WithLimiterMetrics(p.collector),
	}, p.limiterOptions...)

	limiter, err := engine.NewLimiter(limiterOptions...)
	if err != nil {
		return err
	}

	aggregator, err := metrics.NewAggregator(p.out,
		metrics.WithFormat(p.format),
		metrics.WithRunID(p.runID),
		metrics.WithLogger(p.logger),
		metrics.WithMetrics(p.collector, map[string]string{logAttrMode: cfg.Mode()}))
	if err != nil {
		return err
	}

	stopCtx, stop := context.WithCancel(ctx)
	defer stop()

	if cfg.Duration > 0 {
		var cancelTimeout context.CancelFunc
		stopCtx, cancelTimeout = context.WithTimeout(stopCtx, cfg.Duration)
		defer cancelTimeout()
	}

	p.println(fmt.Sprintf("Running with %s mode", cfg.Mode()))
	p.logger.Info(logMsgRunStarted,
		logAttrRunID, p.runID,
		logAttrMode, cfg.Mode(),
		logAttrRateLimit, cfg.RateLimit,
		logAttrConcurrent, cfg.Concurrent)

	txCtx := context.WithoutCancel(ctx)

	aggregated := make(chan error, 1)
	go func() { aggregated <- aggregator.Run(txCtx) }()

	tokens := limiter.Start(stopCtx, cfg.RateLimit)
	onFatal := func(err error) {
		p.logger.Warn(logMsgServiceFailed, logAttrError, err.Error())
		stop()
	}

	var g errgroup.Group
	for _, svc := range services {
		worker := engine.NewWorkerService(db,
			engine.WithServiceName(svc.name),
			engine.WithServiceLogger(p.logger),
			engine.WithOnFatal(onFatal))

		g.Go(func() error {
			return worker.Run(txCtx, tokens, cfg.Concurrent, aggregator, svc.body)
		})
	}

	runErr := g.Wait()

	aggregator.Close()
	aggregateErr := <-aggregated

	p.logger.Info(logMsgRunFinished,
		logAttrRunID, p.runID,
		logAttrIssuedTokens, limiter.Issued(),
		logAttrDroppedTokens, limiter.Dropped(),
		logAttrReports, aggregator.Reports())

	return errors.Join(runErr, aggregateErr)
}

func (p *phase) services(cfg RunConfig) ([]service, error) {
	workloadCfg := workload.Config{CommodityCount: cfg.CommodityCount, ConsumerCount: cfg.ConsumerCount}
	workloadOptions := []workload.Option{workload.WithLogger(p.logger)}

	evaluate, err := workload.NewEvaluate(workloadCfg, workloadOptions...)
	if err != nil {
		return nil, err
	}

	if cfg.Downgrade {
		return []service{{name: serviceEvaluate, body: evaluate}}, nil
	}

	sell, err := workload.NewSell(workloadCfg, workloadOptions...)
	if err != nil {
		return nil, err
	}

	reprice, err := workload.NewReprice(workloadCfg, workloadOptions...)
	if err != nil {
		return nil, err
	}

	return []service{
		{name: serviceSell, body: sell},
		{name: serviceEvaluate, body: evaluate},
		{name: serviceReprice, body: reprice},
	}, nil
}
