package commands

import (
	"errors"
	"strings"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/services"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderParams is the raw check-in form.
type SubmitOrderParams struct {
	Name               string
	Phone              string
	CompanionCount     int
	SuitcaseQty        int
	BackpackQty        int
	ExpectedPickupAt   time.Time
	Tier               membership.Tier
	StaffPrepaidAmount *int64
	// PaymentMethod is what the customer intends to pay with. Optional, and
	// ignored for manual entries.
	PaymentMethod string
	Note          string
	// ManualEntry marks orders keyed in at the counter by staff.
	ManualEntry bool
	Actor       *kernel.Actor
}

// SubmitOrderCommand checks luggage in. Customer orders come from the
// self-service form; manual entries are keyed in by staff, always count a
// single companion and carry no payment method until paid.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(SubmitOrderParams{
//	    Name: "Kim", Phone: "090-0000-0000", CompanionCount: 2,
//	    SuitcaseQty: 2, BackpackQty: 1, ExpectedPickupAt: pickupAt,
//	    PaymentMethod: "PAY_QR",
//	})
//	id, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	booking  services.BookingRequest
	declared order.PaymentMethod
	manual   bool
	actor    *kernel.Actor

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(p SubmitOrderParams) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		manual: p.ManualEntry,
		booking: services.BookingRequest{
			SuitcaseQty:        p.SuitcaseQty,
			BackpackQty:        p.BackpackQty,
			ExpectedPickupAt:   p.ExpectedPickupAt,
			Tier:               p.Tier.Normalized(),
			StaffPrepaidAmount: p.StaffPrepaidAmount,
			Note:               p.Note,
		},
		guard: guard.NewConstructorGuard(),
	}

	companions := p.CompanionCount
	if p.ManualEntry {
		companions = 1
	}

	if err := errors.Join(
		cmd.setCustomer(p.Name, p.Phone, companions),
		cmd.setDeclared(p.PaymentMethod),
		cmd.setActor(p.Actor),
		cmd.checkPickup(p.ExpectedPickupAt),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Customer() order.Customer { return c.customer }
func (c SubmitOrderCommand) BookingRequest() services.BookingRequest { return c.booking }
func (c SubmitOrderCommand) DeclaredPaymentMethod() order.PaymentMethod { return c.declared }
func (c SubmitOrderCommand) IsManualEntry() bool { return c.manual }
func (c SubmitOrderCommand) Actor() *kernel.Actor { return c.actor }

func (c *SubmitOrderCommand) setCustomer(name, phone string, companions int) error {
	customer, err := order.NewCustomer(name, phone, companions)
	if err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *SubmitOrderCommand) setDeclared(raw string) error {
	if c.manual || strings.TrimSpace(raw) == "" {
		c.declared = order.NoPaymentMethod
		return nil
	}
	method, err := order.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.declared = method
	return nil
}

func (c *SubmitOrderCommand) setActor(actor *kernel.Actor) error {
	if actor == nil {
		if c.manual {
			return errs.NewValueIsRequiredError("actor")
		}
		return nil
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	a := *actor
	c.actor = &a
	return nil
}

func (c *SubmitOrderCommand) checkPickup(pickupAt time.Time) error {
	if pickupAt.IsZero() {
		return errs.NewValueIsRequiredError("expectedPickupAt")
	}
	return nil
}
