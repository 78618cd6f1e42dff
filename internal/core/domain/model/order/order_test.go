package order_test

import (
	"testing"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 7, 4, 1, 0, 0, 0, time.UTC)

func mustQuote(t *testing.T, days int, base int64, tier membership.Tier, staff *int64) order.PrepaidQuote {
	t.Helper()
	q, err := order.NewPrepaidQuote(days, decimal.Zero, base, tier, staff)
	require.NoError(t, err)
	return q
}

// newTestOrder is two suitcases and three backpacks at 2900/day for three
// days with a Gold pass: 8700 - 300 = 8400 prepaid.
func newTestOrder(t *testing.T, declared order.PaymentMethod) *order.Order {
	t.Helper()
	bags, err := order.NewBags(2, 3)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Kim", "090-0000-0000", 2)
	require.NoError(t, err)

	o, err := order.NewOrder("20250704-001", "1", customer, order.Booking{
		Bags:             bags,
		PricePerDay:      2900,
		CreatedAt:        createdAt,
		ExpectedPickupAt: createdAt.Add(48 * time.Hour),
		Quote:            mustQuote(t, 3, 8700, membership.Gold, nil),
		Note:             " 07/06 pickup ",
	}, declared)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with prepaid quote applied", func(t *testing.T) {
		o := newTestOrder(t, order.PayQR)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.ID("20250704-001"), o.ID())
		assert.Equal(t, "1", o.TagNo())
		assert.False(t, o.IsManualEntry())
		assert.Equal(t, order.PaymentPending, o.Status())
		assert.Equal(t, order.PayQR, o.DeclaredPaymentMethod())
		assert.False(t, o.PaymentMethod().IsSet(), "declaring a method is not paying")
		assert.Equal(t, 2, o.Bags().Sets())
		assert.Equal(t, 3, o.ExpectedStorageDays())
		assert.Equal(t, int64(300), o.MemberDiscount())
		assert.Equal(t, int64(8400), o.PrepaidAmount())
		assert.Equal(t, int64(0), o.ExtraAmount())
		assert.Equal(t, int64(8400), o.FinalAmount())
		assert.Equal(t, "07/06 pickup", o.Note())
		assert.Equal(t, 1, o.Version())
		assert.Nil(t, o.ActualPickupAt())
		assert.Nil(t, o.StaffOverride())
	})

	t.Run("should flag manual entries by id prefix", func(t *testing.T) {
		bags, _ := order.NewBags(1, 0)
		customer, _ := order.NewCustomer("Lee", "080", 1)
		o, err := order.NewOrder("M-20250704-002", "M-20250704-002", customer, order.Booking{
			Bags:             bags,
			PricePerDay:      800,
			CreatedAt:        createdAt,
			ExpectedPickupAt: createdAt,
			Quote:            mustQuote(t, 1, 800, membership.None, nil),
		}, order.NoPaymentMethod)

		require.NoError(t, err)
		assert.True(t, o.IsManualEntry())
		assert.False(t, o.PaymentMethod().IsSet())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder("bad", "", order.Customer{}, order.Booking{}, order.PaymentMethod(9))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject pickup before creation", func(t *testing.T) {
		bags, _ := order.NewBags(1, 0)
		customer, _ := order.NewCustomer("Lee", "080", 1)
		_, err := order.NewOrder("20250704-003", "3", customer, order.Booking{
			Bags:             bags,
			PricePerDay:      800,
			CreatedAt:        createdAt,
			ExpectedPickupAt: createdAt.Add(-time.Hour),
			Quote:            mustQuote(t, 1, 800, membership.None, nil),
		}, order.NoPaymentMethod)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_MarkPaid(t *testing.T) {
	o := newTestOrder(t, order.NoPaymentMethod)

	require.NoError(t, o.MarkPaid(order.Cash))
	assert.Equal(t, order.Paid, o.Status())
	assert.Equal(t, order.Cash, o.PaymentMethod())

	require.NoError(t, o.MarkPaid(order.PayQR))
	assert.Equal(t, order.PayQR, o.PaymentMethod())

	err := o.MarkPaid(order.NoPaymentMethod)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.PayQR, o.PaymentMethod())
}

func TestOrder_CompletePickup(t *testing.T) {
	t.Run("should charge overage days", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		now := createdAt.Add(96 * time.Hour)

		require.NoError(t, o.CompletePickup(now, 5))

		assert.Equal(t, order.PickedUp, o.Status())
		require.NotNil(t, o.ActualPickupAt())
		assert.True(t, now.Equal(*o.ActualPickupAt()))
		assert.Equal(t, 5, *o.ActualStorageDays())
		assert.Equal(t, 2, o.ExtraDays())
		assert.Equal(t, int64(5800), o.ExtraAmount())
		assert.Equal(t, int64(14200), o.FinalAmount())
	})

	t.Run("should not charge when picked up early", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		require.NoError(t, o.CompletePickup(createdAt.Add(time.Hour), 1))
		assert.Equal(t, 0, o.ExtraDays())
		assert.Equal(t, o.PrepaidAmount(), o.FinalAmount())
	})

	t.Run("should reject second pickup without mutation", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.CompletePickup(createdAt.Add(time.Hour), 1))
		before := o.Snapshot()

		err := o.CompletePickup(createdAt.Add(200*time.Hour), 9)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("should reject non positive day count", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		err := o.CompletePickup(createdAt, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, order.PaymentPending, o.Status())
	})
}

func TestOrder_UndoPickup(t *testing.T) {
	t.Run("should restore pre pickup state exactly", func(t *testing.T) {
		o := newTestOrder(t, order.NoPaymentMethod)
		require.NoError(t, o.MarkPaid(order.PayQR))
		before := o.Snapshot()

		require.NoError(t, o.CompletePickup(createdAt.Add(120*time.Hour), 6))
		require.NoError(t, o.UndoPickup())

		assert.Equal(t, before, o.Snapshot())
		assert.Equal(t, order.Paid, o.Status())
	})

	t.Run("should return to pending without payment method", func(t *testing.T) {
		o := newTestOrder(t, order.NoPaymentMethod)
		require.NoError(t, o.CompletePickup(createdAt.Add(time.Hour), 1))

		require.NoError(t, o.UndoPickup())
		assert.Equal(t, order.PaymentPending, o.Status())
		assert.Equal(t, o.PrepaidAmount(), o.FinalAmount())
	})

	t.Run("should return to pending when method was only declared", func(t *testing.T) {
		o := newTestOrder(t, order.PayQR)
		before := o.Snapshot()

		require.NoError(t, o.CompletePickup(createdAt.Add(120*time.Hour), 6))
		require.NoError(t, o.UndoPickup())

		assert.Equal(t, order.PaymentPending, o.Status())
		assert.False(t, o.PaymentMethod().IsSet())
		assert.Equal(t, order.PayQR, o.DeclaredPaymentMethod())
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("should reject when not picked up", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.ErrorIs(t, o.UndoPickup(), errs.ErrStateConflict)
	})
}

func TestOrder_ApplyQuote(t *testing.T) {
	t.Run("should keep staff override when it differs from auto", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		staff := int64(5000)

		require.NoError(t, o.ApplyQuote(mustQuote(t, 3, 8700, membership.Gold, &staff)))

		assert.Equal(t, int64(5000), o.PrepaidAmount())
		assert.Equal(t, int64(5000), o.FinalAmount())
		require.NotNil(t, o.StaffOverride())
		assert.Equal(t, int64(5000), *o.StaffOverride())
	})

	t.Run("should reject once picked up and leave prices untouched", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.CompletePickup(createdAt.Add(time.Hour), 1))
		before := o.Snapshot()

		err := o.ApplyQuote(mustQuote(t, 1, 100, membership.None, nil))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("should reject unconstructed quote", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.ErrorIs(t, o.ApplyQuote(order.PrepaidQuote{}), order.ErrPrepaidQuoteIsNotConstructed)
	})
}

func TestOrder_Reschedule(t *testing.T) {
	o := newTestOrder(t, order.Cash)
	newPickup := createdAt.Add(6 * 24 * time.Hour)

	require.NoError(t, o.Reschedule(newPickup, mustQuote(t, 7, 20300, membership.Gold, nil)))

	assert.True(t, newPickup.Equal(o.ExpectedPickupAt()))
	assert.Equal(t, 7, o.ExpectedStorageDays())
	assert.Equal(t, int64(20000), o.PrepaidAmount())

	err := o.Reschedule(createdAt.Add(-time.Hour), mustQuote(t, 1, 100, membership.None, nil))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, 7, o.ExpectedStorageDays())
}

func TestOrder_AssignTagAndTouch(t *testing.T) {
	o := newTestOrder(t, order.Cash)
	assert.False(t, o.NeedsTag())
	require.ErrorIs(t, o.AssignTag("  "), errs.ErrValueIsRequired)
	require.NoError(t, o.AssignTag("17"))
	assert.Equal(t, "17", o.TagNo())

	staff := kernel.NewUUID()
	actor, err := kernel.NewStaff(staff)
	require.NoError(t, err)
	require.NoError(t, o.Touch(actor))
	require.NotNil(t, o.LastActor())
	assert.True(t, o.LastActor().IsEqual(staff))
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should round trip through snapshot", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.MarkPaid(order.Cash))
		require.NoError(t, o.CompletePickup(createdAt.Add(96*time.Hour), 5))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		require.NoError(t, restored.UndoPickup())
		assert.Equal(t, order.Paid, restored.Status())
	})

	t.Run("should reject broken amount invariant", func(t *testing.T) {
		s := newTestOrder(t, order.Cash).Snapshot()
		s.FinalAmount++

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject inconsistent set quantity", func(t *testing.T) {
		s := newTestOrder(t, order.Cash).Snapshot()
		s.SetQty = 3

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject paid status without payment", func(t *testing.T) {
		s := newTestOrder(t, order.Cash).Snapshot()
		s.Status = order.Paid

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should allow a missing tag", func(t *testing.T) {
		s := newTestOrder(t, order.Cash).Snapshot()
		s.TagNo = ""

		restored, err := order.RestoreOrder(s)
		require.NoError(t, err)
		assert.True(t, restored.NeedsTag())
	})
}
