package queries

import (
	"errors"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/ports"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

// MaxSalesPeriodDays bounds a single sales report.
const MaxSalesPeriodDays = 366

var ErrGetSalesForPeriodQueryIsNotConstructed = errors.New(
	"GetSalesForPeriodQuery must be created via NewGetSalesForPeriodQuery constructor",
)

// GetSalesForPeriodQuery asks for daily and monthly sales analytics over
// the inclusive date range [first, last].
type GetSalesForPeriodQuery struct {
	first kernel.BusinessDate
	last  kernel.BusinessDate
	guard guard.ConstructorGuard
}

func NewGetSalesForPeriodQuery(first, last kernel.BusinessDate) (GetSalesForPeriodQuery, error) {
	if err := errors.Join(first.Validate(), last.Validate()); err != nil {
		return GetSalesForPeriodQuery{}, err
	}
	if last.Before(first) {
		return GetSalesForPeriodQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"salesPeriod", errors.New("end date must be on or after start date"),
		)
	}
	if days := first.DaysUntil(last) + 1; days > MaxSalesPeriodDays {
		return GetSalesForPeriodQuery{}, errs.NewValueIsOutOfRangeError("salesPeriodDays", days, 1, MaxSalesPeriodDays)
	}

	return GetSalesForPeriodQuery{first: first, last: last, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSalesForPeriodQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesForPeriodQueryIsNotConstructed)
}

func (q GetSalesForPeriodQuery) First() kernel.BusinessDate { return q.first }
func (q GetSalesForPeriodQuery) Last() kernel.BusinessDate { return q.last }

// MonthlySales is SalesTotals for one calendar month, keyed YYYY-MM.
type MonthlySales struct {
	Month string
	ports.SalesTotals
}

// GetSalesForPeriodQueryResponse holds one row per date, one per month
// touched by the range, the range totals and two averages rounded half to
// even: revenue per day and revenue per order.
type GetSalesForPeriodQueryResponse struct {
	First           kernel.BusinessDate
	Last            kernel.BusinessDate
	Days            []ports.DailySalesTotals
	Months          []MonthlySales
	Totals          ports.SalesTotals
	RangeDays       int
	AvgDailyRevenue int64
	AvgOrderRevenue int64
}
