package services

import (
	"errors"
	"strings"
	"time"

	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/pkg/errs"
)

// BookingRequest is what staff or the customer form supplies when luggage
// is checked in.
type BookingRequest struct {
	SuitcaseQty        int
	BackpackQty        int
	ExpectedPickupAt   time.Time
	Tier               membership.Tier
	StaffPrepaidAmount *int64
	Note               string
}

// OrderLifecycle applies the pricing rules to order transitions that need
// them. It never persists anything; command handlers own the unit of work.
//
// Every method checks the order's status before computing anything, so a
// rejected call leaves the order exactly as it was.
type OrderLifecycle struct {
	engine *PricingEngine
}

func NewOrderLifecycle(engine *PricingEngine) (*OrderLifecycle, error) {
	if engine == nil {
		return nil, errs.NewValueIsRequiredError("engine")
	}
	return &OrderLifecycle{engine: engine}, nil
}

func (l *OrderLifecycle) Engine() *PricingEngine {
	return l.engine
}

// Book validates a check-in at now and prices it.
//
// Returns:
//   - order.Booking: bags, rate, schedule, prepaid quote and note
//   - error: VALIDATION_ERROR for bad quantities, a pickup outside business
//     hours or a pickup in the past
func (l *OrderLifecycle) Book(req BookingRequest, now time.Time) (order.Booking, error) {
	bags, err := order.NewBags(req.SuitcaseQty, req.BackpackQty)
	if err != nil {
		return order.Booking{}, err
	}
	if err = l.engine.ValidatePickupWindow(req.ExpectedPickupAt); err != nil {
		return order.Booking{}, err
	}
	if req.ExpectedPickupAt.Before(now) {
		return order.Booking{}, errs.NewValueIsInvalidErrorWithCause(
			"expectedPickupAt", errors.New("pickup time cannot be in the past"),
		)
	}

	days, err := l.engine.StorageDays(now, req.ExpectedPickupAt)
	if err != nil {
		return order.Booking{}, err
	}
	_, pricePerDay, err := l.engine.RatePerDay(bags.Suitcase(), bags.Backpack())
	if err != nil {
		return order.Booking{}, err
	}
	quote, err := l.engine.Quote(pricePerDay, days, req.Tier, req.StaffPrepaidAmount)
	if err != nil {
		return order.Booking{}, err
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = l.PickupNote(now, req.ExpectedPickupAt)
	}

	return order.Booking{
		Bags:             bags,
		PricePerDay:      pricePerDay,
		CreatedAt:        now,
		ExpectedPickupAt: req.ExpectedPickupAt,
		Quote:            quote,
		Note:             note,
	}, nil
}

// PickupNote is "MM/DD pickup" when the pickup falls on a later shop-local
// day than creation, and empty otherwise.
func (l *OrderLifecycle) PickupNote(createdAt, pickupAt time.Time) string {
	cal := l.engine.Calendar()
	if !cal.BusinessDateOf(createdAt).Before(cal.BusinessDateOf(pickupAt)) {
		return ""
	}
	return cal.Local(pickupAt).Format("01/02") + " pickup"
}

// CompletePickup charges overage for the span from creation to now.
func (l *OrderLifecycle) CompletePickup(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.Status().CompletePickup(); err != nil {
		return err
	}

	days, err := l.engine.StorageDays(o.CreatedAt(), now)
	if err != nil {
		return err
	}
	return o.CompletePickup(now, days)
}

// EditPickupSchedule moves the expected pickup and reprices the order.
// A nil tier keeps the current one; a nil staff amount drops any override.
func (l *OrderLifecycle) EditPickupSchedule(
	o *order.Order,
	newPickupAt time.Time,
	tier *membership.Tier,
	staffAmount *int64,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.Status().ValidateRepricing(); err != nil {
		return err
	}
	if err := l.engine.ValidatePickupWindow(newPickupAt); err != nil {
		return err
	}

	days, err := l.engine.StorageDays(o.CreatedAt(), newPickupAt)
	if err != nil {
		return err
	}
	quote, err := l.engine.Quote(o.PricePerDay(), days, resolveTier(o, tier), staffAmount)
	if err != nil {
		return err
	}
	return o.Reschedule(newPickupAt, quote)
}

// RecalculatePrepaid reprices the order for a day count, defaulting to the
// current expected days. Counts below one are treated as one.
func (l *OrderLifecycle) RecalculatePrepaid(
	o *order.Order,
	days *int,
	tier *membership.Tier,
	staffAmount *int64,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.Status().ValidateRepricing(); err != nil {
		return err
	}

	effectiveDays := o.ExpectedStorageDays()
	if days != nil {
		effectiveDays = *days
	}
	effectiveDays = max(effectiveDays, 1)

	quote, err := l.engine.Quote(o.PricePerDay(), effectiveDays, resolveTier(o, tier), staffAmount)
	if err != nil {
		return err
	}
	return o.ApplyQuote(quote)
}

func resolveTier(o *order.Order, tier *membership.Tier) membership.Tier {
	if tier == nil {
		return o.Tier()
	}
	return tier.Normalized()
}
