package engine

import (
	"context"

	"github.com/leoppro/tiny-orders/store"
)

// TxBody is one unit of work executed inside an open transaction.
// It returns the number of rows it changed.
type TxBody interface {
	Execute(ctx context.Context, tx *store.Tx) (uint32, error)
}

// TxBodyFunc adapts a function to TxBody.
type TxBodyFunc func(ctx context.Context, tx *store.Tx) (uint32, error)

// Execute calls f.
func (f TxBodyFunc) Execute(ctx context.Context, tx *store.Tx) (uint32, error) {
	return f(ctx, tx)
}

// Transactor opens transactions. *store.Store implements it.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx *store.Tx) (uint32, error)) (uint32, error)
}

// Logger interface for progress and failure reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
