package order

import (
	"fmt"
	"strings"

	"luggage/internal/pkg/errs"
)

// PaymentMethod records how the prepaid amount was settled. The zero value
// means no method is on record yet.
type PaymentMethod int

const (
	NoPaymentMethod PaymentMethod = iota
	Cash
	PayQR
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		Cash:  "CASH",
		PayQR: "PAY_QR",
	}
}

// ParsePaymentMethod accepts CASH and PAY_QR, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for m, name := range getPaymentMethodStrings() {
		if name == normalized {
			return m, nil
		}
	}
	return NoPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not a supported payment method", s),
	)
}

func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a supported payment method", m))
	}
	return nil
}

func (m PaymentMethod) IsSet() bool {
	return m != NoPaymentMethod
}

// String returns the persisted name, or "" when unset.
func (m PaymentMethod) String() string {
	return getPaymentMethodStrings()[m]
}
