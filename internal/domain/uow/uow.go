// Package uow defines the transaction boundary used by every ledger
// operation. Storage adapters implement Transactor; domain services only see
// the context that carries the active transaction.
package uow

import "context"

// Transactor runs fn inside a single transaction.
//
// The transaction is committed when fn returns nil and rolled back on any
// error or panic. When ctx already carries a transaction started by an outer
// WithinTx call, fn joins it and the outer call owns commit and rollback.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactorFunc adapts a function to the Transactor interface.
type TransactorFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// WithinTx implements Transactor.
func (f TransactorFunc) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Passthrough runs fn directly without a transaction. Useful for unit tests
// with in-memory repositories.
var Passthrough Transactor = TransactorFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
