package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Repositories it returns after
// Begin are bound to that transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	OrderRetention() OrderRetention
	CounterRepository() CounterRepository
	CashClosingRepository() CashClosingRepository
	CashClosingAuditRepository() CashClosingAuditRepository
	SalesLedger() SalesLedger
}
