package promadapter

import (
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector implements metrics.MetricsCollector using Prometheus vectors.
// Vectors are created on demand the first time a metric name is seen:
//   - RecordDuration -> HistogramVec in seconds
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// The label keys of the first call fix the label set of a metric. Later calls with
// other keys are dropped.
type MetricsCollector struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	labelKeys  map[string][]string
}

// NewMetricsCollector creates a collector that registers its vectors in a fresh registry.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		registry:   prometheus.NewRegistry(),
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		labelKeys:  make(map[string][]string),
	}
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordDuration observes duration in seconds.
func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	histogram, values, ok := m.histogram(metric, labels)
	if !ok {
		return
	}

	histogram.WithLabelValues(values...).Observe(duration.Seconds())
}

// IncrementCounter adds one to the counter.
func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	counter, values, ok := m.counter(metric, labels)
	if !ok {
		return
	}

	counter.WithLabelValues(values...).Inc()
}

// RecordValue sets the gauge to value.
func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	gauge, values, ok := m.gauge(metric, labels)
	if !ok {
		return
	}

	gauge.WithLabelValues(values...).Set(value)
}

func (m *MetricsCollector) histogram(metric string, labels map[string]string) (*prometheus.HistogramVec, []string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, values, ok := m.resolveLabels(metric, labels)
	if !ok {
		return nil, nil, false
	}

	histogram, exists := m.histograms[metric]
	if !exists {
		histogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metric,
			Help:    help(metric),
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}, keys)

		if err := m.registry.Register(histogram); err != nil {
			return nil, nil, false
		}

		m.histograms[metric] = histogram
	}

	return histogram, values, true
}

func (m *MetricsCollector) counter(metric string, labels map[string]string) (*prometheus.CounterVec, []string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, values, ok := m.resolveLabels(metric, labels)
	if !ok {
		return nil, nil, false
	}

	counter, exists := m.counters[metric]
	if !exists {
		counter = prometheus.NewCounterVec(prometheus.CounterOpts{Name: metric, Help: help(metric)}, keys)

		if err := m.registry.Register(counter); err != nil {
			return nil, nil, false
		}

		m.counters[metric] = counter
	}

	return counter, values, true
}

func (m *MetricsCollector) gauge(metric string, labels map[string]string) (*prometheus.GaugeVec, []string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, values, ok := m.resolveLabels(metric, labels)
	if !ok {
		return nil, nil, false
	}

	gauge, exists := m.gauges[metric]
	if !exists {
		gauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metric, Help: help(metric)}, keys)

		if err := m.registry.Register(gauge); err != nil {
			return nil, nil, false
		}

		m.gauges[metric] = gauge
	}

	return gauge, values, true
}

// resolveLabels returns the sorted label keys of metric and the values of labels in that order.
// The caller must hold m.mu.
func (m *MetricsCollector) resolveLabels(metric string, labels map[string]string) ([]string, []string, bool) {
	keys, known := m.labelKeys[metric]
	if !known {
		keys = make([]string, 0, len(labels))
		for key := range labels {
			keys = append(keys, key)
		}

		slices.Sort(keys)
		m.labelKeys[metric] = keys
	}

	if len(keys) != len(labels) {
		return nil, nil, false
	}

	values := make([]string, len(keys))
	for i, key := range keys {
		value, exists := labels[key]
		if !exists {
			return nil, nil, false
		}

		values[i] = value
	}

	return keys, values, true
}

func help(metric string) string {
	return "tiny-orders " + strings.ReplaceAll(strings.TrimPrefix(metric, "tiny_orders_"), "_", " ")
}
