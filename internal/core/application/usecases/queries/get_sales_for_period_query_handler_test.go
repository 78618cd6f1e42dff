package queries_test

import (
	"context"
	"testing"
	"time"

	"luggage/internal/adapters/out/postgres/orderrepo"
	"luggage/internal/adapters/out/postgres/pgtest"
	"luggage/internal/core/application/usecases/queries"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetSalesForPeriodQueryHandler_GroupsByDayAndMonth(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := openSQLite(t)
	repo := orderrepo.NewGormOrderRepository(db, nopTracker{})

	june := time.Date(2025, time.June, 30, 12, 0, 0, 0, pgtest.Tokyo)
	lastOfJune := pgtest.PaidOrder(t, "20250630-001", june, order.Cash)
	firstOfJuly := pgtest.PaidOrder(t, "20250701-001", at(1, 10), order.PayQR)
	member := pgtest.MemberOrder(t, "20250701-002", at(1, 11), membership.Silver)
	require.NoError(t, member.MarkPaid(order.Cash))
	unpaid := pgtest.BookedOrder(t, "20250702-001", "3", at(2, 10))
	outside := pgtest.PaidOrder(t, "20250703-001", at(3, 10), order.Cash)
	for _, o := range []*order.Order{lastOfJune, firstOfJuly, member, unpaid, outside} {
		require.NoError(t, repo.Add(ctx, o))
	}

	handler := queries.NewGetSalesForPeriodQueryHandler(orderrepo.NewGormSalesLedger(db), pgtest.Calendar(t))
	query, err := queries.NewGetSalesForPeriodQuery(
		kernel.MustParseBusinessDate("2025-06-30"),
		kernel.MustParseBusinessDate("2025-07-02"),
	)
	require.NoError(t, err)

	// Act
	report, err := handler.Handle(ctx, query)

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Days, 3)
	assert.Equal(t, 3, report.RangeDays)
	assert.Equal(t, "2025-06-30", report.Days[0].BusinessDate.String())
	assert.Equal(t, lastOfJune.PrepaidAmount(), report.Days[0].Revenue)
	assert.Equal(t, firstOfJuly.PrepaidAmount()+member.PrepaidAmount(), report.Days[1].Revenue)
	assert.Equal(t, member.MemberDiscount(), report.Days[1].MemberDiscount)
	assert.Zero(t, report.Days[2].Orders)

	require.Len(t, report.Months, 2)
	assert.Equal(t, "2025-06", report.Months[0].Month)
	assert.Equal(t, lastOfJune.PrepaidAmount(), report.Months[0].Revenue)
	assert.Equal(t, "2025-07", report.Months[1].Month)
	assert.Equal(t, 2, report.Months[1].Orders)
	assert.Equal(t, 2, report.Months[1].Customers)

	total := lastOfJune.PrepaidAmount() + firstOfJuly.PrepaidAmount() + member.PrepaidAmount()
	assert.Equal(t, total, report.Totals.Revenue)
	assert.Equal(t, 3, report.Totals.Orders)
	assert.Equal(t, report.Totals.Cash+report.Totals.QR, report.Totals.Revenue)
}

func Test_GetSalesForPeriodQueryHandler_AveragesRoundHalfToEven(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := openSQLite(t)
	repo := orderrepo.NewGormOrderRepository(db, nopTracker{})

	o := pgtest.PaidOrder(t, "20250704-001", at(4, 10), order.Cash)
	require.NoError(t, repo.Add(ctx, o))

	handler := queries.NewGetSalesForPeriodQueryHandler(orderrepo.NewGormSalesLedger(db), pgtest.Calendar(t))
	query, err := queries.NewGetSalesForPeriodQuery(
		kernel.MustParseBusinessDate("2025-07-04"),
		kernel.MustParseBusinessDate("2025-07-07"),
	)
	require.NoError(t, err)

	// Act
	report, err := handler.Handle(ctx, query)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, o.PrepaidAmount(), report.AvgOrderRevenue)
	assert.InDelta(t, float64(o.PrepaidAmount())/4, float64(report.AvgDailyRevenue), 0.5)
}

func Test_GetSalesForPeriodQueryHandler_EmptyRangeHasZeroAverages(t *testing.T) {
	handler := queries.NewGetSalesForPeriodQueryHandler(orderrepo.NewGormSalesLedger(openSQLite(t)), pgtest.Calendar(t))
	query, err := queries.NewGetSalesForPeriodQuery(
		kernel.MustParseBusinessDate("2025-07-04"),
		kernel.MustParseBusinessDate("2025-07-04"),
	)
	require.NoError(t, err)

	report, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Len(t, report.Days, 1)
	assert.Len(t, report.Months, 1)
	assert.Zero(t, report.AvgDailyRevenue)
	assert.Zero(t, report.AvgOrderRevenue)
}

func Test_GetSalesForPeriodQuery_Validation(t *testing.T) {
	first := kernel.MustParseBusinessDate("2025-07-04")

	t.Run("end before start", func(t *testing.T) {
		_, err := queries.NewGetSalesForPeriodQuery(first, first.AddDays(-1))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("longer than a year", func(t *testing.T) {
		_, err := queries.NewGetSalesForPeriodQuery(first, first.AddDays(queries.MaxSalesPeriodDays))
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("exactly the maximum", func(t *testing.T) {
		_, err := queries.NewGetSalesForPeriodQuery(first, first.AddDays(queries.MaxSalesPeriodDays-1))
		assert.NoError(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := queries.NewGetSalesForPeriodQuery(kernel.BusinessDate{}, first)
		assert.Error(t, err)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := queries.NewGetSalesForPeriodQueryHandler(orderrepo.NewGormSalesLedger(openSQLite(t)), pgtest.Calendar(t)).
			Handle(context.Background(), queries.GetSalesForPeriodQuery{})
		assert.ErrorIs(t, err, queries.ErrGetSalesForPeriodQueryIsNotConstructed)
	})
}
