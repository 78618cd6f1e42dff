package order

import (
	"fmt"
	"strings"

	"luggage/internal/pkg/errs"
)

// Status is the position of an order in its lifecycle.
//
//	PaymentPending ──> Paid ──> PickedUp
//	      │  ▲          ▲ │        │
//	      │  └──────────┼─┘        │ undo
//	      └─────────────┴──────────┘
//
// Pickup may complete from either unpaid or paid; undo returns to Paid when a
// payment method is on record and to PaymentPending otherwise.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// PaymentPending is the initial status of every submitted order.
	PaymentPending

	// Paid means staff recorded a payment method.
	Paid

	// PickedUp freezes the price fields until an explicit undo.
	PickedUp
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		PaymentPending: "PAYMENT_PENDING",
		Paid:           "PAID",
		PickedUp:       "PICKED_UP",
	}
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != PaymentPending && s != Paid && s != PickedUp {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsPickedUp reports whether prices are frozen.
func (s Status) IsPickedUp() bool {
	return s == PickedUp
}

// MarkPaid transitions PaymentPending or Paid to Paid.
func (s Status) MarkPaid() (Status, error) {
	if s != PaymentPending && s != Paid {
		return 0, errs.NewStateConflictError("mark paid", s.String())
	}
	return Paid, nil
}

// CompletePickup transitions any valid non-PickedUp status to PickedUp.
func (s Status) CompletePickup() (Status, error) {
	if s.Validate() != nil || s == PickedUp {
		return 0, errs.NewStateConflictError("complete pickup", s.String())
	}
	return PickedUp, nil
}

// UndoPickup transitions PickedUp back to Paid or PaymentPending.
func (s Status) UndoPickup(hasPaymentMethod bool) (Status, error) {
	if s != PickedUp {
		return 0, errs.NewStateConflictError("undo pickup", s.String())
	}
	if hasPaymentMethod {
		return Paid, nil
	}
	return PaymentPending, nil
}

// ValidateRepricing rejects price edits once the order is picked up.
func (s Status) ValidateRepricing() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == PickedUp {
		return errs.NewStateConflictError("recalculate prepaid", s.String())
	}
	return nil
}
