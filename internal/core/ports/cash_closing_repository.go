package ports

import (
	"context"
	"time"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
)

// CashClosingRepository persists CashClosing aggregates as whole rows.
type CashClosingRepository interface {
	Add(ctx context.Context, aggregate *cashclosing.CashClosing) error
	Update(ctx context.Context, aggregate *cashclosing.CashClosing) error
	Get(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error)

	// ExistsFor reports whether a closing other than exclude already uses
	// the (date, closing type) key.
	ExistsFor(
		ctx context.Context,
		date kernel.BusinessDate,
		closingType cashclosing.ClosingType,
		exclude *kernel.UUID,
	) (bool, error)
}

// CashClosingAuditRepository is insert-only.
type CashClosingAuditRepository interface {
	Append(ctx context.Context, entry cashclosing.AuditEntry) error
}

// SalesLedger sums the prepaid amounts of PAID and PICKED_UP orders created
// in [from, to), split by payment method.
type SalesLedger interface {
	Summarize(ctx context.Context, from, to time.Time) (cashclosing.LedgerSales, error)
}
