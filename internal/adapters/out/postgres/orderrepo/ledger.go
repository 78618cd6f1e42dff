package orderrepo

import (
	"context"
	"errors"
	"time"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/ports"
	"luggage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSalesLedger reads settled orders for the cash closing reconciliation
// and for sales reports. Both share one scan and one accumulation.
type GormSalesLedger struct {
	db *gorm.DB
}

func NewGormSalesLedger(db *gorm.DB) *GormSalesLedger {
	return &GormSalesLedger{db: db}
}

type settledRow struct {
	CreatedAt      time.Time
	PaymentMethod  *string
	PrepaidAmount  int64
	MemberDiscount int64
	CompanionCount int
}

// Summarize covers orders created in [from, to) whose status is PAID or
// PICKED_UP, split by recorded payment method.
func (l *GormSalesLedger) Summarize(ctx context.Context, from, to time.Time) (cashclosing.LedgerSales, error) {
	rows, err := l.settled(ctx, from, to)
	if err != nil {
		return cashclosing.LedgerSales{}, err
	}

	var totals ports.SalesTotals
	for _, row := range rows {
		if err = accumulate(&totals, row); err != nil {
			return cashclosing.LedgerSales{}, err
		}
	}
	return cashclosing.LedgerSales{Cash: totals.Cash, QR: totals.QR}, nil
}

// DailyTotals buckets settled orders by the local date of their creation.
func (l *GormSalesLedger) DailyTotals(
	ctx context.Context,
	calendar kernel.ShopCalendar,
	first, last kernel.BusinessDate,
) ([]ports.DailySalesTotals, error) {
	if err := errors.Join(calendar.Validate(), first.Validate(), last.Validate()); err != nil {
		return nil, err
	}
	if last.Before(first) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"salesPeriod", errors.New("last date must not precede first date"),
		)
	}

	days := make([]ports.DailySalesTotals, first.DaysUntil(last)+1)
	for i := range days {
		days[i].BusinessDate = first.AddDays(i)
	}

	from, _ := calendar.DayRange(first)
	_, to := calendar.DayRange(last)
	rows, err := l.settled(ctx, from, to)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		i := first.DaysUntil(calendar.BusinessDateOf(row.CreatedAt))
		if i < 0 || i >= len(days) {
			continue
		}
		if err = accumulate(&days[i].SalesTotals, row); err != nil {
			return nil, err
		}
	}
	return days, nil
}

func (l *GormSalesLedger) settled(ctx context.Context, from, to time.Time) ([]settledRow, error) {
	if !from.Before(to) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"ledgerRange", errors.New("range start must be before its end"),
		)
	}

	var rows []settledRow
	err := l.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("created_at, payment_method, prepaid_amount, member_discount, companion_count").
		Where("status IN ?", []string{order.Paid.String(), order.PickedUp.String()}).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func accumulate(totals *ports.SalesTotals, row settledRow) error {
	amount := max(row.PrepaidAmount, 0)
	totals.Revenue += amount
	totals.MemberDiscount += max(row.MemberDiscount, 0)
	totals.Orders++
	totals.Customers += max(row.CompanionCount, 1)

	if row.PaymentMethod == nil {
		return nil
	}
	method, err := order.ParsePaymentMethod(*row.PaymentMethod)
	if err != nil {
		return err
	}
	switch method {
	case order.Cash:
		totals.Cash += amount
		totals.CashOrders++
	case order.PayQR:
		totals.QR += amount
		totals.QROrders++
	}
	return nil
}
