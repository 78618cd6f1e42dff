// Package sequence turns per-business-day counter values into the identifiers
// printed on orders and claim tags.
package sequence

import (
	"fmt"
	"strconv"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"
)

// ManualPrefix marks orders keyed in by staff instead of the customer form.
const ManualPrefix = "M-"

// FormatOrderID renders "YYYYMMDD-NNN". Sequences beyond 999 simply widen.
func FormatOrderID(date kernel.BusinessDate, seq int) (string, error) {
	if err := validate(date, seq); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", date.Compact(), seq), nil
}

// FormatManualOrderID renders "M-YYYYMMDD-NNN". Manual and customer orders
// share the ORDER counter.
func FormatManualOrderID(date kernel.BusinessDate, seq int) (string, error) {
	id, err := FormatOrderID(date, seq)
	if err != nil {
		return "", err
	}
	return ManualPrefix + id, nil
}

// FormatTagNo renders the TAG counter as a plain decimal string.
func FormatTagNo(seq int) (string, error) {
	if seq < 1 {
		return "", errs.NewValueIsOutOfRangeError("sequence", seq, 1, "unbounded")
	}
	return strconv.Itoa(seq), nil
}

func validate(date kernel.BusinessDate, seq int) error {
	if err := date.Validate(); err != nil {
		return err
	}
	if seq < 1 {
		return errs.NewValueIsOutOfRangeError("sequence", seq, 1, "unbounded")
	}
	return nil
}
