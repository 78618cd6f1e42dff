package queries

import (
	"context"
	"fmt"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/ports"

	"github.com/shopspring/decimal"
)

type GetSalesForPeriodQueryHandler struct {
	report   ports.SalesReport
	calendar kernel.ShopCalendar
}

func NewGetSalesForPeriodQueryHandler(report ports.SalesReport, calendar kernel.ShopCalendar) GetSalesForPeriodQueryHandler {
	return GetSalesForPeriodQueryHandler{report: report, calendar: calendar}
}

func (h GetSalesForPeriodQueryHandler) Handle(
	ctx context.Context,
	query GetSalesForPeriodQuery,
) (GetSalesForPeriodQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSalesForPeriodQueryResponse{}, err
	}

	days, err := h.report.DailyTotals(ctx, h.calendar, query.First(), query.Last())
	if err != nil {
		return GetSalesForPeriodQueryResponse{}, err
	}

	response := GetSalesForPeriodQueryResponse{
		First:     query.First(),
		Last:      query.Last(),
		Days:      days,
		RangeDays: len(days),
	}
	for _, day := range days {
		response.Totals = response.Totals.Plus(day.SalesTotals)

		month := fmt.Sprintf("%04d-%02d", day.BusinessDate.Year(), int(day.BusinessDate.Month()))
		if n := len(response.Months); n == 0 || response.Months[n-1].Month != month {
			response.Months = append(response.Months, MonthlySales{Month: month})
		}
		current := &response.Months[len(response.Months)-1]
		current.SalesTotals = current.SalesTotals.Plus(day.SalesTotals)
	}

	response.AvgDailyRevenue = roundedAverage(response.Totals.Revenue, response.RangeDays)
	response.AvgOrderRevenue = roundedAverage(response.Totals.Revenue, response.Totals.Orders)
	return response, nil
}

func roundedAverage(sum int64, n int) int64 {
	if n == 0 {
		return 0
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(n))).RoundBank(0).IntPart()
}
