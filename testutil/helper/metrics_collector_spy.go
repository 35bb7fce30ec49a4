package helper

import (
	"maps"
	"sync"
	"time"
)

// MetricsCollectorSpy captures MetricsCollector calls for testing.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations map[string][]time.Duration
	counters  map[string]int
	values    map[string][]float64
	labels    map[string]map[string]string
}

// NewMetricsCollectorSpy creates an empty MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		durations: make(map[string][]time.Duration),
		counters:  make(map[string]int),
		values:    make(map[string][]float64),
		labels:    make(map[string]map[string]string),
	}
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations[metric] = append(s.durations[metric], duration)
	s.labels[metric] = maps.Clone(labels)
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[metric]++
	s.labels[metric] = maps.Clone(labels)
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[metric] = append(s.values[metric], value)
	s.labels[metric] = maps.Clone(labels)
}

// DurationCount returns how many durations were recorded for metric.
func (s *MetricsCollectorSpy) DurationCount(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durations[metric])
}

// CounterValue returns how often metric was incremented.
func (s *MetricsCollectorSpy) CounterValue(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[metric]
}

// ValueSum returns the sum of all values recorded for metric.
func (s *MetricsCollectorSpy) ValueSum(metric string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, v := range s.values[metric] {
		sum += v
	}

	return sum
}

// LastLabels returns a copy of the labels of the last call for metric.
func (s *MetricsCollectorSpy) LastLabels(metric string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.labels[metric])
}
