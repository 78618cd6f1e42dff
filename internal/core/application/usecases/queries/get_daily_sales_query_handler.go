package queries

import (
	"context"
	"fmt"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/ports"
)

// GetDailySalesQueryHandler reads one business date from the sales report,
// the same ledger the cash closing is reconciled against.
type GetDailySalesQueryHandler struct {
	report   ports.SalesReport
	calendar kernel.ShopCalendar
}

func NewGetDailySalesQueryHandler(report ports.SalesReport, calendar kernel.ShopCalendar) GetDailySalesQueryHandler {
	return GetDailySalesQueryHandler{report: report, calendar: calendar}
}

func (h GetDailySalesQueryHandler) Handle(
	ctx context.Context,
	query GetDailySalesQuery,
) (GetDailySalesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDailySalesQueryResponse{}, err
	}

	date := query.BusinessDate()
	days, err := h.report.DailyTotals(ctx, h.calendar, date, date)
	if err != nil {
		return GetDailySalesQueryResponse{}, err
	}
	if len(days) != 1 {
		return GetDailySalesQueryResponse{}, fmt.Errorf("sales report returned %d days for %s", len(days), date)
	}

	t := days[0].SalesTotals
	return GetDailySalesQueryResponse{
		BusinessDate:   date,
		Cash:           t.Cash,
		QR:             t.QR,
		Total:          t.Cash + t.QR,
		CashOrders:     t.CashOrders,
		QROrders:       t.QROrders,
		Revenue:        t.Revenue,
		Orders:         t.Orders,
		Customers:      t.Customers,
		MemberDiscount: t.MemberDiscount,
	}, nil
}
