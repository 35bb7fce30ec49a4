// Package adapters provide database adapter implementations for the tiny-orders store.
//
// The store talks to pgxpool.Pool directly or to any database/sql driver through sqlx.DB.
// Both adapters expose the same DBAdapter interface so that the store builds queries once
// and runs them against PostgreSQL, CockroachDB, MySQL or SQLite.
//
// Queries are passed as fully interpolated SQL strings, no adapter takes bind arguments.
package adapters
