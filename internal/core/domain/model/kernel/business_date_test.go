package kernel_test

import (
	"testing"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessDate(t *testing.T) {
	for _, in := range []string{"2025-01-31", "20250131"} {
		d, err := kernel.ParseBusinessDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 31, d.Day())
		assert.Equal(t, "2025-01-31", d.String())
		assert.Equal(t, "20250131", d.Compact())
	}

	_, err := kernel.ParseBusinessDate("2025/01/31")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewBusinessDate_RejectsImpossibleDay(t *testing.T) {
	_, err := kernel.NewBusinessDate(2025, time.February, 30)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	d, err := kernel.NewBusinessDate(2024, time.February, 29)
	require.NoError(t, err)
	require.NoError(t, d.Validate())
}

func TestBusinessDate_Arithmetic(t *testing.T) {
	d := kernel.MustParseBusinessDate("2024-12-31")
	next := d.AddDays(1)

	assert.Equal(t, "2025-01-01", next.String())
	assert.True(t, d.Before(next))
	assert.False(t, next.Before(d))
	assert.Equal(t, 1, d.DaysUntil(next))
	assert.Equal(t, -1, next.DaysUntil(d))
	assert.True(t, next.IsEqual(kernel.MustParseBusinessDate("20250101")))
}

func TestBusinessDate_ZeroValue(t *testing.T) {
	var d kernel.BusinessDate
	require.ErrorIs(t, d.Validate(), kernel.ErrBusinessDateIsNotConstructed)
}

func TestActor(t *testing.T) {
	staffID := kernel.NewUUID()
	other := kernel.NewUUID()

	staff, err := kernel.NewStaff(staffID)
	require.NoError(t, err)
	assert.False(t, staff.IsAdmin())
	assert.True(t, staff.Is(&staffID))
	assert.False(t, staff.Is(&other))
	assert.False(t, staff.Is(nil))

	admin, err := kernel.NewAdmin(other)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = kernel.NewStaff(kernel.UUID{})
	require.Error(t, err)

	var zero kernel.Actor
	require.ErrorIs(t, zero.Validate(), kernel.ErrActorIsNotConstructed)
}
