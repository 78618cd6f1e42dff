// Package postgres implements the unit of work over GORM. One UnitOfWork
// is one database transaction; the repositories it hands out after Begin
// run inside that transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, observer)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate o
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork.
package postgres

import (
	"context"

	"luggage/internal/adapters/out/postgres/cashclosingrepo"
	"luggage/internal/adapters/out/postgres/counterrepo"
	"luggage/internal/adapters/out/postgres/orderrepo"
	"luggage/internal/core/ports"

	"gorm.io/gorm"
)

// WrittenAggregate is an aggregate row added or updated in a unit of work.
type WrittenAggregate struct {
	Kind   string
	Status string
}

// CommitObserver is told which aggregates a committed transaction wrote.
type CommitObserver interface {
	Committed(written []WrittenAggregate)
}

type nopCommitObserver struct{}

func (nopCommitObserver) Committed([]WrittenAggregate) {}

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per operation.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer CommitObserver
}

// NewGormUnitOfWorkFactory accepts a nil observer.
func NewGormUnitOfWorkFactory(db *gorm.DB, observer CommitObserver) *GormUnitOfWorkFactory {
	if observer == nil {
		observer = nopCommitObserver{}
	}
	return &GormUnitOfWorkFactory{db: db, observer: observer}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		observer: f.observer,
		written:  make([]WrittenAggregate, 0),
	}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	observer CommitObserver
	written  []WrittenAggregate
}

// Begin starts the transaction. A second call on an open unit of work is
// a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalises the transaction and reports the written aggregates.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	written := uow.written
	uow.written = make([]WrittenAggregate, 0)
	if err != nil {
		return err
	}

	uow.observer.Committed(written)
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction
// when nothing is open, which is the normal case for a deferred rollback
// after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.written = make([]WrittenAggregate, 0)
	return err
}

// TrackAggregate records a written aggregate for the commit observer.
func (uow *GormUnitOfWork) TrackAggregate(kind, status string) {
	uow.written = append(uow.written, WrittenAggregate{Kind: kind, Status: status})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRetention() ports.OrderRetention {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SalesLedger() ports.SalesLedger {
	return orderrepo.NewGormSalesLedger(uow.conn())
}

func (uow *GormUnitOfWork) CounterRepository() ports.CounterRepository {
	return counterrepo.NewGormCounterRepository(uow.conn())
}

func (uow *GormUnitOfWork) CashClosingRepository() ports.CashClosingRepository {
	return cashclosingrepo.NewGormCashClosingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CashClosingAuditRepository() ports.CashClosingAuditRepository {
	return cashclosingrepo.NewGormAuditRepository(uow.conn())
}
