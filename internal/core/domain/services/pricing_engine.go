package services

import (
	"errors"
	"fmt"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rates are the daily prices in yen.
type Rates struct {
	Set      int64
	Suitcase int64
	Backpack int64
}

// DefaultRates: a suitcase and backpack pair costs 1200 per day, a lone
// suitcase 800 and a lone backpack 500.
func DefaultRates() Rates {
	return Rates{Set: 1200, Suitcase: 800, Backpack: 500}
}

// DurationDiscount applies Rate to storages of at least MinDays.
type DurationDiscount struct {
	MinDays int
	Rate    decimal.Decimal
}

// DefaultDurationDiscounts are sorted by MinDays descending.
func DefaultDurationDiscounts() []DurationDiscount {
	return []DurationDiscount{
		{MinDays: 60, Rate: decimal.RequireFromString("0.20")},
		{MinDays: 30, Rate: decimal.RequireFromString("0.15")},
		{MinDays: 14, Rate: decimal.RequireFromString("0.10")},
		{MinDays: 7, Rate: decimal.RequireFromString("0.05")},
	}
}

// PricingEngine holds the pure pricing rules. It has no state beyond its
// configuration and is safe for concurrent use.
type PricingEngine struct {
	calendar  kernel.ShopCalendar
	rates     Rates
	discounts []DurationDiscount
}

// NewPricingEngine creates an engine with the default rates and duration
// discounts for the given shop calendar.
func NewPricingEngine(calendar kernel.ShopCalendar) (*PricingEngine, error) {
	return NewPricingEngineWithRates(calendar, DefaultRates(), DefaultDurationDiscounts())
}

func NewPricingEngineWithRates(
	calendar kernel.ShopCalendar,
	rates Rates,
	discounts []DurationDiscount,
) (*PricingEngine, error) {
	if err := calendar.Validate(); err != nil {
		return nil, err
	}
	if rates.Set < 0 || rates.Suitcase < 0 || rates.Backpack < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("rates", errors.New("daily rates must not be negative"))
	}
	for i, d := range discounts {
		if d.Rate.IsNegative() || d.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, errs.NewValueIsOutOfRangeError("discountRate", d.Rate.String(), 0, "<1")
		}
		if i > 0 && discounts[i-1].MinDays <= d.MinDays {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"discounts", errors.New("duration discounts must be sorted by MinDays descending"),
			)
		}
	}

	return &PricingEngine{
		calendar:  calendar,
		rates:     rates,
		discounts: append([]DurationDiscount(nil), discounts...),
	}, nil
}

func (e *PricingEngine) Calendar() kernel.ShopCalendar {
	return e.calendar
}

// RatePerDay pairs suitcases with backpacks into sets and prices the rest
// individually.
func (e *PricingEngine) RatePerDay(suitcase, backpack int) (int, int64, error) {
	if suitcase < 0 {
		return 0, 0, errs.NewValueIsOutOfRangeError("suitcaseQty", suitcase, 0, "unbounded")
	}
	if backpack < 0 {
		return 0, 0, errs.NewValueIsOutOfRangeError("backpackQty", backpack, 0, "unbounded")
	}

	sets := min(suitcase, backpack)
	price := int64(sets)*e.rates.Set +
		int64(suitcase-sets)*e.rates.Suitcase +
		int64(backpack-sets)*e.rates.Backpack
	return sets, price, nil
}

// DiscountRateForDays returns the duration discount as a fraction.
func (e *PricingEngine) DiscountRateForDays(days int) decimal.Decimal {
	for _, d := range e.discounts {
		if days >= d.MinDays {
			return d.Rate
		}
	}
	return decimal.Zero
}

// PrepaidAmount is pricePerDay * days * (1 - rate) rounded half to even.
func (e *PricingEngine) PrepaidAmount(pricePerDay int64, days int) (decimal.Decimal, int64, error) {
	if days < 1 {
		return decimal.Zero, 0, errs.NewValueIsOutOfRangeError("storageDays", days, 1, "unbounded")
	}
	if pricePerDay < 0 {
		return decimal.Zero, 0, errs.NewValueIsOutOfRangeError("pricePerDay", pricePerDay, 0, "unbounded")
	}

	rate := e.DiscountRateForDays(days)
	gross := decimal.NewFromInt(pricePerDay).Mul(decimal.NewFromInt(int64(days)))
	net := gross.Mul(decimal.NewFromInt(1).Sub(rate)).RoundBank(0)
	return rate, net.IntPart(), nil
}

// MembershipDiscount is the amount the tier takes off base.
func (e *PricingEngine) MembershipDiscount(base int64, tier membership.Tier) int64 {
	return tier.Discount(base)
}

// Quote prices a storage span for a tier, honouring an optional staff
// entered prepaid amount.
func (e *PricingEngine) Quote(
	pricePerDay int64,
	days int,
	tier membership.Tier,
	staffAmount *int64,
) (order.PrepaidQuote, error) {
	rate, base, err := e.PrepaidAmount(pricePerDay, days)
	if err != nil {
		return order.PrepaidQuote{}, err
	}
	return order.NewPrepaidQuote(days, rate, base, tier, staffAmount)
}

// ValidatePickupWindow requires t to fall within business hours, shop time.
func (e *PricingEngine) ValidatePickupWindow(t time.Time) error {
	if !e.calendar.WithinBusinessHours(t) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedPickupAt",
			fmt.Errorf("pickup time must be within business hours %s", e.calendar.BusinessHoursLabel()),
		)
	}
	return nil
}

// StorageDays counts shop-local calendar days from creation to pickup,
// both inclusive.
func (e *PricingEngine) StorageDays(createdAt, pickupAt time.Time) (int, error) {
	if pickupAt.Before(createdAt) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"pickupAt", errors.New("pickup time cannot be before the order creation time"),
		)
	}
	from := e.calendar.BusinessDateOf(createdAt)
	to := e.calendar.BusinessDateOf(pickupAt)
	return max(from.DaysUntil(to)+1, 1), nil
}
