// Package commands contains the operations that change state: order
// submission and transitions, sequence minting, cash closing workflow and
// retention. Every handler runs inside one unit of work, retried as a
// whole on transient database conflicts.
package commands

import (
	"context"

	"luggage/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	// OrderUoW covers order mutations, which may mint sequence numbers in
	// the same transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CounterRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CounterUoW interface {
		TxManager
		CounterRepoFactory
	}

	CounterUoWFactory interface {
		Create() CounterUoW
	}

	// CashClosingUoW covers a closing mutation, its audit entry and the
	// ledger read it is reconciled against.
	CashClosingUoW interface {
		TxManager
		CashClosingRepository() ports.CashClosingRepository
		CashClosingAuditRepository() ports.CashClosingAuditRepository
		SalesLedger() ports.SalesLedger
	}

	CashClosingUoWFactory interface {
		Create() CashClosingUoW
	}

	RetentionUoW interface {
		TxManager
		OrderRetention() ports.OrderRetention
	}

	RetentionUoWFactory interface {
		Create() RetentionUoW
	}

	// Retrier reruns fn while it fails with a retryable database error
	// (serialization failure, deadlock, lock not available). fn must open
	// and finish its own unit of work so every attempt starts clean.
	// Exhausted retries surface as errs.ErrTransient.
	Retrier interface {
		Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
	}
)
