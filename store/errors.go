package store

import "errors"

// ErrUnsupportedURL is returned when the connection URL has an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// ErrUnknownDriver is returned when WithDriver receives an unknown driver name.
var ErrUnknownDriver = errors.New("unknown postgres driver")

// ErrEmptyTablePrefix is returned when WithTablePrefix receives an empty prefix.
var ErrEmptyTablePrefix = errors.New("table prefix must not be empty")

// ErrInvalidMaxConns is returned when WithMaxConns receives a negative value.
var ErrInvalidMaxConns = errors.New("max connections must not be negative")

// ErrConnectFailed is returned when the database cannot be reached.
var ErrConnectFailed = errors.New("connecting to database failed")

// ErrNotFound is returned by the finders when no row matches.
var ErrNotFound = errors.New("row not found")

// ErrBuildQueryFailed is returned when goqu cannot render a statement.
var ErrBuildQueryFailed = errors.New("building query failed")

// ErrQueryFailed is returned when a query fails.
var ErrQueryFailed = errors.New("query failed")

// ErrExecFailed is returned when a statement fails.
var ErrExecFailed = errors.New("statement execution failed")

// ErrScanRowFailed is returned when a row cannot be scanned.
var ErrScanRowFailed = errors.New("scanning row failed")

// ErrBeginTxFailed is returned when a transaction cannot be opened.
var ErrBeginTxFailed = errors.New("beginning transaction failed")

// ErrCommitFailed is returned when a transaction cannot be committed.
var ErrCommitFailed = errors.New("committing transaction failed")

// ErrSchemaFailed is returned when dropping or creating a table fails.
var ErrSchemaFailed = errors.New("schema setup failed")
