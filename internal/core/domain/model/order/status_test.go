package order_test

import (
	"testing"

	"luggage/internal/core/domain/model/order"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]order.Status{
		"PAYMENT_PENDING": order.PaymentPending,
		"paid":            order.Paid,
		" PICKED_UP ":     order.PickedUp,
	}
	for in, want := range cases {
		got, err := order.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := order.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseStatus("CANCELLED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.PaymentPending, order.Paid, order.PickedUp} {
		assert.NoError(t, s.Validate(), s.String())
	}
	assert.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestStatus_MarkPaid(t *testing.T) {
	t.Run("should allow pending and paid", func(t *testing.T) {
		for _, s := range []order.Status{order.PaymentPending, order.Paid} {
			next, err := s.MarkPaid()
			require.NoError(t, err)
			assert.Equal(t, order.Paid, next)
		}
	})

	t.Run("should reject picked up", func(t *testing.T) {
		next, err := order.PickedUp.MarkPaid()
		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, order.Status(0), next)
		assert.Equal(t, errs.KindStateConflict, errs.KindOf(err))
	})
}

func TestStatus_CompletePickup(t *testing.T) {
	for _, s := range []order.Status{order.PaymentPending, order.Paid} {
		next, err := s.CompletePickup()
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, next)
	}

	for _, s := range []order.Status{order.PickedUp, order.Unknown} {
		_, err := s.CompletePickup()
		require.ErrorIs(t, err, errs.ErrStateConflict, s.String())
	}
}

func TestStatus_UndoPickup(t *testing.T) {
	next, err := order.PickedUp.UndoPickup(true)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, next)

	next, err = order.PickedUp.UndoPickup(false)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPending, next)

	_, err = order.Paid.UndoPickup(true)
	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestStatus_ValidateRepricing(t *testing.T) {
	assert.NoError(t, order.PaymentPending.ValidateRepricing())
	assert.NoError(t, order.Paid.ValidateRepricing())
	assert.ErrorIs(t, order.PickedUp.ValidateRepricing(), errs.ErrStateConflict)
	assert.ErrorIs(t, order.Unknown.ValidateRepricing(), errs.ErrValueIsInvalid)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := order.ParsePaymentMethod("cash")
	require.NoError(t, err)
	assert.Equal(t, order.Cash, m)
	assert.Equal(t, "CASH", m.String())

	m, err = order.ParsePaymentMethod("PAY_QR")
	require.NoError(t, err)
	assert.Equal(t, order.PayQR, m)

	_, err = order.ParsePaymentMethod("CARD")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.False(t, order.NoPaymentMethod.IsSet())
	assert.Equal(t, "", order.NoPaymentMethod.String())
	assert.ErrorIs(t, order.NoPaymentMethod.Validate(), errs.ErrValueIsInvalid)
}
