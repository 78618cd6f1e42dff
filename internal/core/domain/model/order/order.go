package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a luggage storage order. It is the aggregate root for everything
// charged to a customer: the daily rate, the duration and membership
// discounts, a possible staff override and the overage computed at pickup.
//
// Order follows these invariants:
//   - final amount is always prepaid amount plus extra amount
//   - set quantity is always min(suitcase, backpack)
//   - price fields cannot change while the order is picked up
//   - status transitions follow Status
//
// Fields are private; every mutation goes through a method that validates
// first and writes second, so a rejected call leaves the order untouched.
type Order struct {
	id          ID
	tagNo       string
	manualEntry bool
	customer    Customer
	bags        Bags
	pricePerDay int64

	expectedPickupAt    time.Time
	expectedStorageDays int
	actualStorageDays   *int
	extraDays           int

	discountRate   decimal.Decimal
	tier           membership.Tier
	memberDiscount int64
	staffOverride  *int64
	prepaidAmount  int64
	extraAmount    int64
	finalAmount    int64

	status         Status
	paymentMethod  PaymentMethod
	declaredMethod PaymentMethod
	createdAt      time.Time
	actualPickupAt *time.Time
	note           string
	lastActor      *kernel.UUID
	version        int

	isConstructed bool
}

// Booking carries the priced terms of a new order: what was checked in,
// when, until when, and the prepaid quote for that span.
type Booking struct {
	Bags             Bags
	PricePerDay      int64
	CreatedAt        time.Time
	ExpectedPickupAt time.Time
	Quote            PrepaidQuote
	Note             string
}

// NewOrder creates a PaymentPending order from a priced booking.
//
// Parameters:
//   - id: order number minted from the ORDER counter
//   - tagNo: claim tag minted from the TAG counter
//   - customer: validated customer details
//   - booking: bags, rate, dates and prepaid quote
//   - declared: payment method declared by the customer, or NoPaymentMethod.
//     It is kept apart from the paid method, which only MarkPaid records.
//
// Returns:
//   - *Order: the new order, with final amount equal to the prepaid amount
//   - error: validation error if any part is invalid
//
// Example:
//
//	bags, _ := order.NewBags(2, 3)
//	customer, _ := order.NewCustomer("Kim", "090-0000-0000", 2)
//	o, err := order.NewOrder("20250704-001", "1", customer, booking, order.PayQR)
func NewOrder(id ID, tagNo string, customer Customer, booking Booking, declared PaymentMethod) (*Order, error) {
	o := &Order{
		status:        PaymentPending,
		createdAt:     booking.CreatedAt,
		isConstructed: true,
		version:       1,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTagNo(tagNo),
		o.setCustomer(customer),
		o.setBooking(booking),
		o.setDeclaredPaymentMethod(declared),
	); err != nil {
		return nil, err
	}

	o.manualEntry = id.IsManual()
	o.applyQuote(booking.Quote)
	o.note = strings.TrimSpace(booking.Note)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID { return o.id }
func (o *Order) TagNo() string { return o.tagNo }
func (o *Order) IsManualEntry() bool { return o.manualEntry }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Bags() Bags { return o.bags }
func (o *Order) PricePerDay() int64 { return o.pricePerDay }
func (o *Order) ExpectedPickupAt() time.Time { return o.expectedPickupAt }
func (o *Order) ExpectedStorageDays() int { return o.expectedStorageDays }
func (o *Order) ExtraDays() int { return o.extraDays }
func (o *Order) DiscountRate() decimal.Decimal { return o.discountRate }
func (o *Order) Tier() membership.Tier { return o.tier }
func (o *Order) MemberDiscount() int64 { return o.memberDiscount }
func (o *Order) PrepaidAmount() int64 { return o.prepaidAmount }
func (o *Order) ExtraAmount() int64 { return o.extraAmount }
func (o *Order) FinalAmount() int64 { return o.finalAmount }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) DeclaredPaymentMethod() PaymentMethod { return o.declaredMethod }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Note() string { return o.note }
func (o *Order) Version() int { return o.version }

// ActualStorageDays is nil until pickup.
func (o *Order) ActualStorageDays() *int {
	return copyPtr(o.actualStorageDays)
}

// ActualPickupAt is nil until pickup.
func (o *Order) ActualPickupAt() *time.Time {
	return copyPtr(o.actualPickupAt)
}

// StaffOverride is the staff-entered prepaid amount, when it differs from
// the automatic one.
func (o *Order) StaffOverride() *int64 {
	return copyPtr(o.staffOverride)
}

// LastActor is the staff member behind the latest mutation, if any.
func (o *Order) LastActor() *kernel.UUID {
	return copyPtr(o.lastActor)
}

// NeedsTag reports whether no claim tag has been issued yet.
func (o *Order) NeedsTag() bool {
	return o.tagNo == ""
}

// AssignTag sets the claim tag number.
func (o *Order) AssignTag(tagNo string) error {
	return o.setTagNo(tagNo)
}

// Touch records who performed the latest mutation.
func (o *Order) Touch(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	id := actor.StaffID()
	o.lastActor = &id
	return nil
}

// MarkPaid records payment. Allowed from PaymentPending and from Paid, the
// latter to correct the method.
//
// Returns:
//   - nil on success
//   - VALIDATION_ERROR for an unsupported method
//   - STATE_CONFLICT once the order is picked up
func (o *Order) MarkPaid(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	next, err := o.status.MarkPaid()
	if err != nil {
		return err
	}

	o.status = next
	o.paymentMethod = method
	return nil
}

// CompletePickup hands the luggage back and charges any overage.
//
// actualDays is the storage day count between creation and now as computed
// by the pricing engine. Days beyond the expected span are charged at the
// daily rate:
//
//	extra days   = max(actualDays - expected, 0)
//	extra amount = extra days * price per day
//	final amount = prepaid + extra amount
func (o *Order) CompletePickup(now time.Time, actualDays int) error {
	next, err := o.status.CompletePickup()
	if err != nil {
		return err
	}
	if actualDays < 1 {
		return errs.NewValueIsOutOfRangeError("actualStorageDays", actualDays, 1, "unbounded")
	}

	extraDays := max(actualDays-o.expectedStorageDays, 0)
	pickedUpAt := now

	o.actualPickupAt = &pickedUpAt
	o.actualStorageDays = &actualDays
	o.extraDays = extraDays
	o.extraAmount = int64(extraDays) * o.pricePerDay
	o.finalAmount = o.prepaidAmount + o.extraAmount
	o.status = next
	return nil
}

// UndoPickup reverts CompletePickup exactly: pickup fields are cleared,
// the final amount drops back to the prepaid amount and the status returns
// to Paid when a payment was recorded, PaymentPending otherwise. A method
// the customer merely declared at booking does not count as payment.
func (o *Order) UndoPickup() error {
	next, err := o.status.UndoPickup(o.paymentMethod.IsSet())
	if err != nil {
		return err
	}

	o.actualPickupAt = nil
	o.actualStorageDays = nil
	o.extraDays = 0
	o.extraAmount = 0
	o.finalAmount = o.prepaidAmount
	o.status = next
	return nil
}

// ApplyQuote replaces every prepaid-related field with the quote's values
// and recomputes the final amount. Rejected with STATE_CONFLICT once the
// order is picked up.
func (o *Order) ApplyQuote(q PrepaidQuote) error {
	if err := o.status.ValidateRepricing(); err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return err
	}

	o.applyQuote(q)
	return nil
}

// Reschedule moves the expected pickup and applies the quote computed for
// the new span.
func (o *Order) Reschedule(expectedPickupAt time.Time, q PrepaidQuote) error {
	if err := o.status.ValidateRepricing(); err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if expectedPickupAt.Before(o.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedPickupAt",
			fmt.Errorf("%s is before creation %s", expectedPickupAt.Format(time.RFC3339), o.createdAt.Format(time.RFC3339)),
		)
	}

	o.expectedPickupAt = expectedPickupAt
	o.applyQuote(q)
	return nil
}

// SetNote replaces the free text note.
func (o *Order) SetNote(note string) {
	o.note = strings.TrimSpace(note)
}

func (o *Order) applyQuote(q PrepaidQuote) {
	o.expectedStorageDays = q.ExpectedDays()
	o.discountRate = q.DiscountRate()
	o.tier = q.Tier()
	o.memberDiscount = q.MemberDiscount()
	o.staffOverride = q.StaffOverride()
	o.prepaidAmount = q.Prepaid()
	o.finalAmount = o.prepaidAmount + o.extraAmount
}

func (o *Order) setID(id ID) error {
	parsed, err := ParseID(id.String())
	if err != nil {
		return err
	}
	o.id = parsed
	return nil
}

func (o *Order) setTagNo(tagNo string) error {
	tagNo = strings.TrimSpace(tagNo)
	if tagNo == "" {
		return errs.NewValueIsRequiredError("tagNo")
	}
	o.tagNo = tagNo
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = c
	return nil
}

func (o *Order) setBooking(b Booking) error {
	if err := errors.Join(b.Bags.Validate(), b.Quote.Validate()); err != nil {
		return err
	}
	if b.PricePerDay < 0 {
		return errs.NewValueIsOutOfRangeError("pricePerDay", b.PricePerDay, 0, "unbounded")
	}
	if b.CreatedAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if b.ExpectedPickupAt.Before(b.CreatedAt) {
		return errs.NewValueIsInvalidErrorWithCause("expectedPickupAt", errors.New("pickup precedes creation"))
	}

	o.bags = b.Bags
	o.pricePerDay = b.PricePerDay
	o.expectedPickupAt = b.ExpectedPickupAt
	return nil
}

func (o *Order) setDeclaredPaymentMethod(m PaymentMethod) error {
	if m.IsSet() {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	o.declaredMethod = m
	return nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
