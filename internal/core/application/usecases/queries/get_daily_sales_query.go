// Package queries contains read operations. Handlers read straight from the
// database into read models and never touch aggregates.
package queries

import (
	"errors"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/guard"
)

var ErrGetDailySalesQueryIsNotConstructed = errors.New(
	"GetDailySalesQuery must be created via NewGetDailySalesQuery constructor",
)

// GetDailySalesQuery asks for the ledger sales of one business date: the
// baseline staff see before counting the drawer.
//
// Example:
//
//	query, err := NewGetDailySalesQuery(kernel.MustParseBusinessDate("2025-07-04"))
//	sales, err := handler.Handle(ctx, query)
//	fmt.Printf("cash %d, qr %d\n", sales.Cash, sales.QR)
type GetDailySalesQuery struct {
	date  kernel.BusinessDate
	guard guard.ConstructorGuard
}

func NewGetDailySalesQuery(date kernel.BusinessDate) (GetDailySalesQuery, error) {
	if err := date.Validate(); err != nil {
		return GetDailySalesQuery{}, err
	}
	return GetDailySalesQuery{date: date, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDailySalesQuery) Validate() error {
	return q.guard.Validate(ErrGetDailySalesQueryIsNotConstructed)
}

func (q GetDailySalesQuery) BusinessDate() kernel.BusinessDate { return q.date }

// GetDailySalesQueryResponse sums prepaid amounts of PAID and PICKED_UP
// orders created on the date. Total is Cash plus QR, the drawer baseline;
// Revenue also includes settled orders with no recorded method.
// MemberDiscount is the pass discount granted on those orders.
type GetDailySalesQueryResponse struct {
	BusinessDate   kernel.BusinessDate
	Cash           int64
	QR             int64
	Total          int64
	CashOrders     int
	QROrders       int
	Revenue        int64
	Orders         int
	Customers      int
	MemberDiscount int64
}
