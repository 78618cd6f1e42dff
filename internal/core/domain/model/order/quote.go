package order

import (
	"errors"

	"luggage/internal/core/domain/model/membership"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPrepaidQuoteIsNotConstructed = errors.New("PrepaidQuote must be created via NewPrepaidQuote")

// PrepaidQuote is the full set of prepaid-related fields computed for an
// order. It is applied to the aggregate as one unit so a recalculation can
// never leave the price fields half updated.
type PrepaidQuote struct {
	expectedDays   int
	discountRate   decimal.Decimal
	basePrepaid    int64
	tier           membership.Tier
	memberDiscount int64
	autoPrepaid    int64
	prepaid        int64
	staffOverride  *int64

	guard guard.ConstructorGuard
}

// NewPrepaidQuote derives the membership discount and the resolved prepaid
// amount from the duration-discounted base.
//
// Without a staff amount the prepaid amount is max(base - member discount, 0)
// and no override is kept. A staff amount always becomes the prepaid amount
// and is remembered as an override only when it differs from that automatic
// figure.
func NewPrepaidQuote(
	expectedDays int,
	discountRate decimal.Decimal,
	basePrepaid int64,
	tier membership.Tier,
	staffAmount *int64,
) (PrepaidQuote, error) {
	if expectedDays < 1 {
		return PrepaidQuote{}, errs.NewValueIsOutOfRangeError("expectedStorageDays", expectedDays, 1, "unbounded")
	}
	if discountRate.IsNegative() || discountRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return PrepaidQuote{}, errs.NewValueIsOutOfRangeError("discountRate", discountRate.String(), 0, "<1")
	}
	if basePrepaid < 0 {
		return PrepaidQuote{}, errs.NewValueIsOutOfRangeError("basePrepaid", basePrepaid, 0, "unbounded")
	}
	if staffAmount != nil && *staffAmount < 0 {
		return PrepaidQuote{}, errs.NewValueIsOutOfRangeError("staffPrepaidAmount", *staffAmount, 0, "unbounded")
	}

	tier = tier.Normalized()
	discount := tier.Discount(basePrepaid)
	auto := max(basePrepaid-discount, 0)

	q := PrepaidQuote{
		expectedDays:   expectedDays,
		discountRate:   discountRate,
		basePrepaid:    basePrepaid,
		tier:           tier,
		memberDiscount: discount,
		autoPrepaid:    auto,
		prepaid:        auto,
		guard:          guard.NewConstructorGuard(),
	}

	if staffAmount != nil {
		q.prepaid = *staffAmount
		if *staffAmount != auto {
			override := *staffAmount
			q.staffOverride = &override
		}
	}

	return q, nil
}

func (q PrepaidQuote) Validate() error {
	return q.guard.Validate(ErrPrepaidQuoteIsNotConstructed)
}

func (q PrepaidQuote) ExpectedDays() int { return q.expectedDays }
func (q PrepaidQuote) DiscountRate() decimal.Decimal { return q.discountRate }
func (q PrepaidQuote) BasePrepaid() int64 { return q.basePrepaid }
func (q PrepaidQuote) Tier() membership.Tier { return q.tier }
func (q PrepaidQuote) MemberDiscount() int64 { return q.memberDiscount }
func (q PrepaidQuote) AutoPrepaid() int64 { return q.autoPrepaid }
func (q PrepaidQuote) Prepaid() int64 { return q.prepaid }

// StaffOverride is non-nil only when staff charged something other than
// the automatic amount.
func (q PrepaidQuote) StaffOverride() *int64 {
	if q.staffOverride == nil {
		return nil
	}
	v := *q.staffOverride
	return &v
}
