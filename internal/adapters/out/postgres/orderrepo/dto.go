// Package orderrepo persists order aggregates, purges expired ones and
// sums the sales ledger the cash closing is reconciled against.
package orderrepo

import (
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Enumerations are stored by
// name.
type OrderDTO struct {
	ID                  string `gorm:"type:varchar(32);primaryKey"`
	TagNo               string `gorm:"type:varchar(16)"`
	ManualEntry         bool
	CustomerName        string `gorm:"type:varchar(255);not null"`
	CustomerPhone       string `gorm:"type:varchar(64);not null"`
	CompanionCount      int
	SuitcaseQty         int
	BackpackQty         int
	SetQty              int
	PricePerDay         int64
	ExpectedPickupAt    time.Time
	ExpectedStorageDays int
	ActualStorageDays   *int
	ExtraDays           int
	DiscountRate        decimal.Decimal `gorm:"type:numeric(5,4)"`
	Tier                string          `gorm:"type:varchar(16)"`
	MemberDiscount      int64
	StaffOverride       *int64
	PrepaidAmount       int64
	ExtraAmount         int64
	FinalAmount         int64
	Status              string    `gorm:"type:varchar(32);index"`
	PaymentMethod       *string   `gorm:"type:varchar(16)"`
	DeclaredMethod      *string   `gorm:"type:varchar(16)"`
	CreatedAt           time.Time `gorm:"index;autoCreateTime:false"`
	ActualPickupAt      *time.Time
	Note                string
	LastActorID         *uuid.UUID `gorm:"type:uuid"`
	Version             int        `gorm:"not null;default:1"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	var lastActor *uuid.UUID
	if s.LastActor != nil {
		raw := s.LastActor.Raw()
		lastActor = &raw
	}

	return OrderDTO{
		ID:                  s.ID.String(),
		TagNo:               s.TagNo,
		ManualEntry:         s.ManualEntry,
		CustomerName:        s.CustomerName,
		CustomerPhone:       s.CustomerPhone,
		CompanionCount:      s.CompanionCount,
		SuitcaseQty:         s.SuitcaseQty,
		BackpackQty:         s.BackpackQty,
		SetQty:              s.SetQty,
		PricePerDay:         s.PricePerDay,
		ExpectedPickupAt:    s.ExpectedPickupAt.UTC(),
		ExpectedStorageDays: s.ExpectedStorageDays,
		ActualStorageDays:   s.ActualStorageDays,
		ExtraDays:           s.ExtraDays,
		DiscountRate:        s.DiscountRate,
		Tier:                s.Tier.String(),
		MemberDiscount:      s.MemberDiscount,
		StaffOverride:       s.StaffOverride,
		PrepaidAmount:       s.PrepaidAmount,
		ExtraAmount:         s.ExtraAmount,
		FinalAmount:         s.FinalAmount,
		Status:              s.Status.String(),
		PaymentMethod:       methodName(s.PaymentMethod),
		DeclaredMethod:      methodName(s.DeclaredMethod),
		CreatedAt:           s.CreatedAt.UTC(),
		ActualPickupAt:      utcPtr(s.ActualPickupAt),
		Note:                s.Note,
		LastActorID:         lastActor,
		Version:             s.Version,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	method, err := parseMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	declared, err := parseMethod(dto.DeclaredMethod)
	if err != nil {
		return nil, err
	}

	var lastActor *kernel.UUID
	if dto.LastActorID != nil {
		id, idErr := kernel.UUIDFromRaw(*dto.LastActorID)
		if idErr != nil {
			return nil, idErr
		}
		lastActor = &id
	}

	id, err := order.ParseID(dto.ID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		TagNo:               dto.TagNo,
		ManualEntry:         dto.ManualEntry,
		CustomerName:        dto.CustomerName,
		CustomerPhone:       dto.CustomerPhone,
		CompanionCount:      dto.CompanionCount,
		SuitcaseQty:         dto.SuitcaseQty,
		BackpackQty:         dto.BackpackQty,
		SetQty:              dto.SetQty,
		PricePerDay:         dto.PricePerDay,
		ExpectedPickupAt:    dto.ExpectedPickupAt,
		ExpectedStorageDays: dto.ExpectedStorageDays,
		ActualStorageDays:   dto.ActualStorageDays,
		ExtraDays:           dto.ExtraDays,
		DiscountRate:        dto.DiscountRate,
		Tier:                membership.Normalize(dto.Tier),
		MemberDiscount:      dto.MemberDiscount,
		StaffOverride:       dto.StaffOverride,
		PrepaidAmount:       dto.PrepaidAmount,
		ExtraAmount:         dto.ExtraAmount,
		FinalAmount:         dto.FinalAmount,
		Status:              status,
		PaymentMethod:       method,
		DeclaredMethod:      declared,
		CreatedAt:           dto.CreatedAt,
		ActualPickupAt:      dto.ActualPickupAt,
		Note:                dto.Note,
		LastActor:           lastActor,
		Version:             dto.Version,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func methodName(m order.PaymentMethod) *string {
	if !m.IsSet() {
		return nil
	}
	name := m.String()
	return &name
}

func parseMethod(name *string) (order.PaymentMethod, error) {
	if name == nil {
		return order.NoPaymentMethod, nil
	}
	return order.ParsePaymentMethod(*name)
}
