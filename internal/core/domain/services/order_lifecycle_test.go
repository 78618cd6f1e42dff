package services_test

import (
	"testing"
	"time"

	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/services"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2025, 7, 4, 10, 0, 0, 0, jst)

func newLifecycle(t *testing.T) *services.OrderLifecycle {
	t.Helper()
	l, err := services.NewOrderLifecycle(newEngine(t))
	require.NoError(t, err)
	return l
}

func bookOrder(t *testing.T, l *services.OrderLifecycle, req services.BookingRequest) *order.Order {
	t.Helper()
	booking, err := l.Book(req, bookedAt)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Kim", "090", 1)
	require.NoError(t, err)
	o, err := order.NewOrder("20250704-001", "1", customer, booking, order.NoPaymentMethod)
	require.NoError(t, err)
	return o
}

func TestOrderLifecycle_Book(t *testing.T) {
	l := newLifecycle(t)

	t.Run("should price and annotate a multi day booking", func(t *testing.T) {
		booking, err := l.Book(services.BookingRequest{
			SuitcaseQty:      2,
			BackpackQty:      3,
			ExpectedPickupAt: time.Date(2025, 7, 6, 15, 0, 0, 0, jst),
			Tier:             membership.Gold,
		}, bookedAt)

		require.NoError(t, err)
		assert.Equal(t, int64(2900), booking.PricePerDay)
		assert.Equal(t, 3, booking.Quote.ExpectedDays())
		assert.Equal(t, int64(8400), booking.Quote.Prepaid())
		assert.Equal(t, "07/06 pickup", booking.Note)
	})

	t.Run("should leave same day bookings without a note", func(t *testing.T) {
		booking, err := l.Book(services.BookingRequest{
			SuitcaseQty:      1,
			ExpectedPickupAt: bookedAt.Add(2 * time.Hour),
		}, bookedAt)

		require.NoError(t, err)
		assert.Equal(t, "", booking.Note)
		assert.Equal(t, int64(800), booking.Quote.Prepaid())
	})

	t.Run("should keep an explicit note", func(t *testing.T) {
		booking, err := l.Book(services.BookingRequest{
			SuitcaseQty:      1,
			ExpectedPickupAt: bookedAt.Add(26 * time.Hour),
			Note:             "fragile",
		}, bookedAt)

		require.NoError(t, err)
		assert.Equal(t, "fragile", booking.Note)
	})

	t.Run("should reject", func(t *testing.T) {
		cases := map[string]services.BookingRequest{
			"no bags":       {ExpectedPickupAt: bookedAt.Add(time.Hour)},
			"too many bags": {SuitcaseQty: 100, ExpectedPickupAt: bookedAt.Add(time.Hour)},
			"after hours":   {SuitcaseQty: 1, ExpectedPickupAt: time.Date(2025, 7, 4, 22, 0, 0, 0, jst)},
			"in the past":   {SuitcaseQty: 1, ExpectedPickupAt: bookedAt.Add(-time.Minute)},
		}
		for name, req := range cases {
			_, err := l.Book(req, bookedAt)
			require.Error(t, err, name)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err), name)
		}
	})
}

func TestOrderLifecycle_CompletePickup(t *testing.T) {
	l := newLifecycle(t)
	o := bookOrder(t, l, services.BookingRequest{
		SuitcaseQty:      1,
		BackpackQty:      1,
		ExpectedPickupAt: time.Date(2025, 7, 5, 12, 0, 0, 0, jst),
	})

	require.NoError(t, l.CompletePickup(o, time.Date(2025, 7, 8, 12, 0, 0, 0, jst)))

	assert.Equal(t, order.PickedUp, o.Status())
	assert.Equal(t, 5, *o.ActualStorageDays())
	assert.Equal(t, 3, o.ExtraDays())
	assert.Equal(t, int64(3600), o.ExtraAmount())
	assert.Equal(t, o.PrepaidAmount()+o.ExtraAmount(), o.FinalAmount())

	err := l.CompletePickup(o, time.Date(2025, 7, 9, 12, 0, 0, 0, jst))
	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Equal(t, 5, *o.ActualStorageDays())
}

func TestOrderLifecycle_EditPickupSchedule(t *testing.T) {
	l := newLifecycle(t)

	t.Run("should reprice for the new span", func(t *testing.T) {
		o := bookOrder(t, l, services.BookingRequest{
			SuitcaseQty:      1,
			BackpackQty:      1,
			ExpectedPickupAt: time.Date(2025, 7, 5, 12, 0, 0, 0, jst),
		})
		silver := membership.Silver

		err := l.EditPickupSchedule(o, time.Date(2025, 7, 13, 12, 0, 0, 0, jst), &silver, nil)

		require.NoError(t, err)
		assert.Equal(t, 10, o.ExpectedStorageDays())
		assert.Equal(t, "0.05", o.DiscountRate().String())
		assert.Equal(t, membership.Silver, o.Tier())
		assert.Equal(t, int64(11400-200), o.PrepaidAmount())
		assert.Equal(t, o.PrepaidAmount(), o.FinalAmount())
	})

	t.Run("should reject outside business hours without mutation", func(t *testing.T) {
		o := bookOrder(t, l, services.BookingRequest{
			SuitcaseQty:      1,
			ExpectedPickupAt: time.Date(2025, 7, 5, 12, 0, 0, 0, jst),
		})
		before := o.Snapshot()

		err := l.EditPickupSchedule(o, time.Date(2025, 7, 6, 7, 0, 0, 0, jst), nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("should reject once picked up", func(t *testing.T) {
		o := bookOrder(t, l, services.BookingRequest{
			SuitcaseQty:      1,
			ExpectedPickupAt: time.Date(2025, 7, 5, 12, 0, 0, 0, jst),
		})
		require.NoError(t, l.CompletePickup(o, time.Date(2025, 7, 5, 12, 0, 0, 0, jst)))
		before := o.Snapshot()

		err := l.EditPickupSchedule(o, time.Date(2025, 7, 9, 12, 0, 0, 0, jst), nil, nil)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, before, o.Snapshot())
	})
}

func TestOrderLifecycle_RecalculatePrepaid(t *testing.T) {
	l := newLifecycle(t)
	newOrder := func(t *testing.T) *order.Order {
		return bookOrder(t, l, services.BookingRequest{
			SuitcaseQty:      1,
			BackpackQty:      1,
			ExpectedPickupAt: time.Date(2025, 7, 6, 12, 0, 0, 0, jst),
			Tier:             membership.Blue,
		})
	}

	t.Run("should clear override when no staff amount is given", func(t *testing.T) {
		o := newOrder(t)
		staff := int64(1000)
		require.NoError(t, l.RecalculatePrepaid(o, nil, nil, &staff))
		require.NotNil(t, o.StaffOverride())

		require.NoError(t, l.RecalculatePrepaid(o, nil, nil, nil))

		assert.Nil(t, o.StaffOverride())
		assert.Equal(t, int64(3600-100), o.PrepaidAmount())
	})

	t.Run("should treat days below one as one", func(t *testing.T) {
		o := newOrder(t)
		zero := 0

		require.NoError(t, l.RecalculatePrepaid(o, &zero, nil, nil))

		assert.Equal(t, 1, o.ExpectedStorageDays())
		assert.Equal(t, int64(1100), o.PrepaidAmount())
	})

	t.Run("should apply black tier waiver", func(t *testing.T) {
		o := newOrder(t)
		black := membership.Black

		require.NoError(t, l.RecalculatePrepaid(o, nil, &black, nil))

		assert.Equal(t, int64(0), o.PrepaidAmount())
		assert.Equal(t, int64(3600), o.MemberDiscount())
	})

	t.Run("should reject negative staff amount without mutation", func(t *testing.T) {
		o := newOrder(t)
		before := o.Snapshot()
		negative := int64(-5)

		err := l.RecalculatePrepaid(o, nil, nil, &negative)

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, before, o.Snapshot())
	})
}
