package adapters

import (
	"context"
	"errors"
)

// ErrLastInsertIDUnsupported is returned by DBResult.LastInsertID when the driver cannot report it.
var ErrLastInsertIDUnsupported = errors.New("last insert id is not supported by this driver")

// DBAdapter defines the interface for database operations needed by the store.
type DBAdapter interface {
	Begin(ctx context.Context) (TxAdapter, error)
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Close() error
}

// TxAdapter is a single open transaction.
type TxAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
	LastInsertID() (int64, error)
}
