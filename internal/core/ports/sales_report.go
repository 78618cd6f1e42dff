package ports

import (
	"context"

	"luggage/internal/core/domain/model/kernel"
)

// SalesTotals sums settled (PAID or PICKED_UP) orders. Revenue, Orders and
// Customers cover every settled order; Cash and QR only those with a
// recorded payment method.
type SalesTotals struct {
	Revenue        int64
	Cash           int64
	QR             int64
	MemberDiscount int64
	Orders         int
	CashOrders     int
	QROrders       int
	Customers      int
}

// Plus returns the field-wise sum of t and o.
func (t SalesTotals) Plus(o SalesTotals) SalesTotals {
	return SalesTotals{
		Revenue:        t.Revenue + o.Revenue,
		Cash:           t.Cash + o.Cash,
		QR:             t.QR + o.QR,
		MemberDiscount: t.MemberDiscount + o.MemberDiscount,
		Orders:         t.Orders + o.Orders,
		CashOrders:     t.CashOrders + o.CashOrders,
		QROrders:       t.QROrders + o.QROrders,
		Customers:      t.Customers + o.Customers,
	}
}

// DailySalesTotals is SalesTotals for one business date.
type DailySalesTotals struct {
	BusinessDate kernel.BusinessDate
	SalesTotals
}

// SalesReport reads settled orders grouped by the business date they were
// created on.
type SalesReport interface {
	// DailyTotals returns one entry per date in [first, last], in order,
	// with zero totals for days without sales.
	DailyTotals(
		ctx context.Context,
		calendar kernel.ShopCalendar,
		first, last kernel.BusinessDate,
	) ([]DailySalesTotals, error)
}
