// Package promadapter implements metrics.MetricsCollector on top of the Prometheus client library
// and serves the collected series over HTTP.
package promadapter
