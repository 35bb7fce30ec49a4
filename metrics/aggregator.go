package metrics

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultReportInterval = time.Second

	logMsgWriteReportFailed = "failed to write percentile report"
	logAttrError            = "error"
)

// Aggregator collects samples from any number of producers and reports percentiles.
// Record never blocks; Run is the only consumer.
type Aggregator struct {
	mu      sync.Mutex
	backlog []Sample
	closed  bool
	notify  chan struct{}

	out            io.Writer
	format         Format
	reportInterval time.Duration
	now            func() time.Time
	runID          string
	logger         Logger
	collector      MetricsCollector
	labels         map[string]string

	reports atomic.Int64
}

// NewAggregator creates an Aggregator that writes report lines to out.
func NewAggregator(out io.Writer, options ...Option) (*Aggregator, error) {
	a := &Aggregator{
		notify:         make(chan struct{}, 1),
		out:            out,
		format:         FormatText,
		reportInterval: defaultReportInterval,
		now:            time.Now,
	}

	for _, option := range options {
		if err := option(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Record hands a sample to the aggregator. Samples recorded after Close are discarded.
func (a *Aggregator) Record(sample Sample) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.backlog = append(a.backlog, sample)
	a.mu.Unlock()

	a.wake()
}

// Close ends the sample stream. Run drains what is left, flushes a final report and returns.
func (a *Aggregator) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.wake()
}

// Reports returns the number of snapshots written so far.
func (a *Aggregator) Reports() int64 {
	return a.reports.Load()
}

// Run consumes samples until Close was called and every sample is drained, or ctx is done.
func (a *Aggregator) Run(ctx context.Context) error {
	var (
		latencies  []uint32
		rows       uint64
		lastReport = a.now()
	)

	for {
		batch, closed := a.take()

		for _, sample := range batch {
			rows += uint64(sample.Rows)
			latencies = append(latencies, sample.LatencyMS)
			a.forward(sample)

			if now := a.now(); now.Sub(lastReport) > a.reportInterval {
				a.report(latencies, rows, now, now.Sub(lastReport))
				latencies = latencies[:0]
				rows = 0
				lastReport = now
			}
		}

		if len(batch) > 0 {
			continue
		}

		if closed {
			now := a.now()
			a.report(latencies, rows, now, now.Sub(lastReport))

			return nil
		}

		select {
		case <-a.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *Aggregator) wake() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// take swaps out the backlog.
func (a *Aggregator) take() ([]Sample, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	batch := a.backlog
	a.backlog = nil

	return batch, a.closed
}

func (a *Aggregator) forward(sample Sample) {
	if a.collector == nil {
		return
	}

	a.collector.RecordDuration(MetricTxnLatency, time.Duration(sample.LatencyMS)*time.Millisecond, a.labels)
	a.collector.IncrementCounter(MetricTxnCommitted, a.labels)
}

func (a *Aggregator) report(latencies []uint32, rows uint64, at time.Time, elapsed time.Duration) {
	snapshot, ok := ComputeSnapshot(latencies, rows, at, elapsed)
	if !ok {
		return
	}

	snapshot.RunID = a.runID

	if err := writeSnapshot(a.out, a.format, snapshot); err != nil && a.logger != nil {
		a.logger.Warn(logMsgWriteReportFailed, logAttrError, err.Error())
	}

	if a.collector != nil {
		a.collector.RecordValue(MetricRowsPerSecond, float64(snapshot.RowsPerSecond), a.labels)
	}

	a.reports.Add(1)
}
