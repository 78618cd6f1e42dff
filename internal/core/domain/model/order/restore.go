package order

import (
	"errors"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Snapshot is the flat persisted form of an Order. Repositories read and
// write whole snapshots; there is no partial update path.
type Snapshot struct {
	ID                  ID
	TagNo               string
	ManualEntry         bool
	CustomerName        string
	CustomerPhone       string
	CompanionCount      int
	SuitcaseQty         int
	BackpackQty         int
	SetQty              int
	PricePerDay         int64
	ExpectedPickupAt    time.Time
	ExpectedStorageDays int
	ActualStorageDays   *int
	ExtraDays           int
	DiscountRate        decimal.Decimal
	Tier                membership.Tier
	MemberDiscount      int64
	StaffOverride       *int64
	PrepaidAmount       int64
	ExtraAmount         int64
	FinalAmount         int64
	Status              Status
	PaymentMethod       PaymentMethod
	DeclaredMethod      PaymentMethod
	CreatedAt           time.Time
	ActualPickupAt      *time.Time
	Note                string
	LastActor           *kernel.UUID
	Version             int
}

// Snapshot exports the current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                  o.id,
		TagNo:               o.tagNo,
		ManualEntry:         o.manualEntry,
		CustomerName:        o.customer.Name(),
		CustomerPhone:       o.customer.Phone(),
		CompanionCount:      o.customer.CompanionCount(),
		SuitcaseQty:         o.bags.Suitcase(),
		BackpackQty:         o.bags.Backpack(),
		SetQty:              o.bags.Sets(),
		PricePerDay:         o.pricePerDay,
		ExpectedPickupAt:    o.expectedPickupAt,
		ExpectedStorageDays: o.expectedStorageDays,
		ActualStorageDays:   copyPtr(o.actualStorageDays),
		ExtraDays:           o.extraDays,
		DiscountRate:        o.discountRate,
		Tier:                o.tier,
		MemberDiscount:      o.memberDiscount,
		StaffOverride:       copyPtr(o.staffOverride),
		PrepaidAmount:       o.prepaidAmount,
		ExtraAmount:         o.extraAmount,
		FinalAmount:         o.finalAmount,
		Status:              o.status,
		PaymentMethod:       o.paymentMethod,
		DeclaredMethod:      o.declaredMethod,
		CreatedAt:           o.createdAt,
		ActualPickupAt:      copyPtr(o.actualPickupAt),
		Note:                o.note,
		LastActor:           copyPtr(o.lastActor),
		Version:             o.version,
	}
}

// RestoreOrder rebuilds an Order from persistence. Unlike NewOrder it
// accepts any status and a missing tag, but it still enforces the amount
// and set-quantity invariants so corrupted rows surface as errors.
func RestoreOrder(s Snapshot) (*Order, error) {
	id, err := ParseID(s.ID.String())
	if err != nil {
		return nil, err
	}
	customer, err := NewCustomer(s.CustomerName, s.CustomerPhone, max(s.CompanionCount, 1))
	if err != nil {
		return nil, err
	}
	bags, err := NewBags(s.SuitcaseQty, s.BackpackQty)
	if err != nil {
		return nil, err
	}

	var invariantErrs []error
	if err = s.Status.Validate(); err != nil {
		invariantErrs = append(invariantErrs, err)
	}
	for _, m := range []PaymentMethod{s.PaymentMethod, s.DeclaredMethod} {
		if !m.IsSet() {
			continue
		}
		if err = m.Validate(); err != nil {
			invariantErrs = append(invariantErrs, err)
		}
	}
	if s.Status == Paid && !s.PaymentMethod.IsSet() {
		invariantErrs = append(invariantErrs, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if s.SetQty != bags.Sets() {
		invariantErrs = append(invariantErrs, errs.NewValueIsOutOfRangeError("setQty", s.SetQty, bags.Sets(), bags.Sets()))
	}
	if s.FinalAmount != s.PrepaidAmount+s.ExtraAmount {
		invariantErrs = append(invariantErrs, errs.NewValueIsInvalidErrorWithCause(
			"finalAmount", errors.New("final amount must equal prepaid plus extra"),
		))
	}
	if err = errors.Join(invariantErrs...); err != nil {
		return nil, err
	}

	return &Order{
		id:                  id,
		tagNo:               s.TagNo,
		manualEntry:         s.ManualEntry,
		customer:            customer,
		bags:                bags,
		pricePerDay:         s.PricePerDay,
		expectedPickupAt:    s.ExpectedPickupAt,
		expectedStorageDays: s.ExpectedStorageDays,
		actualStorageDays:   copyPtr(s.ActualStorageDays),
		extraDays:           s.ExtraDays,
		discountRate:        s.DiscountRate,
		tier:                s.Tier.Normalized(),
		memberDiscount:      s.MemberDiscount,
		staffOverride:       copyPtr(s.StaffOverride),
		prepaidAmount:       s.PrepaidAmount,
		extraAmount:         s.ExtraAmount,
		finalAmount:         s.FinalAmount,
		status:              s.Status,
		paymentMethod:       s.PaymentMethod,
		declaredMethod:      s.DeclaredMethod,
		createdAt:           s.CreatedAt,
		actualPickupAt:      copyPtr(s.ActualPickupAt),
		note:                s.Note,
		lastActor:           copyPtr(s.LastActor),
		version:             s.Version,
		isConstructed:       true,
	}, nil
}
