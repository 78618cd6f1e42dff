package sequence_test

import (
	"testing"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderID(t *testing.T) {
	date := kernel.MustParseBusinessDate("2025-07-04")

	tests := []struct {
		seq  int
		want string
	}{
		{1, "20250704-001"},
		{42, "20250704-042"},
		{999, "20250704-999"},
		{1000, "20250704-1000"},
	}

	for _, tt := range tests {
		got, err := sequence.FormatOrderID(date, tt.seq)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	manual, err := sequence.FormatManualOrderID(date, 7)
	require.NoError(t, err)
	assert.Equal(t, "M-20250704-007", manual)
}

func TestFormatOrderID_Invalid(t *testing.T) {
	_, err := sequence.FormatOrderID(kernel.MustParseBusinessDate("2025-07-04"), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = sequence.FormatOrderID(kernel.BusinessDate{}, 1)
	require.ErrorIs(t, err, kernel.ErrBusinessDateIsNotConstructed)
}

func TestFormatTagNo(t *testing.T) {
	tag, err := sequence.FormatTagNo(17)
	require.NoError(t, err)
	assert.Equal(t, "17", tag)

	_, err = sequence.FormatTagNo(-3)
	require.Error(t, err)
}

func TestKind(t *testing.T) {
	k, err := sequence.ParseKind(" tag ")
	require.NoError(t, err)
	assert.Equal(t, sequence.TagKind, k)
	assert.Equal(t, "ORDER", sequence.OrderKind.String())

	_, err = sequence.ParseKind("INVOICE")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.Error(t, sequence.UnknownKind.Validate())
	require.NoError(t, sequence.OrderKind.Validate())
}
