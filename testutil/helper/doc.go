// Package helper provides shared test fixtures: SQLite backed stores, env-selected server
// backends, a read-only inspector for asserting on table contents, and spies for slog and metrics.
package helper
