package cashclosing

import (
	"errors"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"
)

// Snapshot is the flat persisted form of a CashClosing.
type Snapshot struct {
	ID             kernel.UUID
	BusinessDate   kernel.BusinessDate
	ClosingType    ClosingType
	Status         WorkflowStatus
	Counts         map[int64]int
	TotalAmount    int64
	AutoCash       int64
	CashDifference int64
	AutoQR         int64
	ActualQR       int64
	QRDifference   int64
	SubmittedBy    *kernel.UUID
	SubmittedAt    *time.Time
	VerifiedBy     *kernel.UUID
	VerifiedAt     *time.Time
	Checklist      Checklist
	OwnerName      string
	Note           string
	StaffID        kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

func (c *CashClosing) Snapshot() Snapshot {
	return Snapshot{
		ID:             c.id,
		BusinessDate:   c.businessDate,
		ClosingType:    c.closingType,
		Status:         c.status,
		Counts:         c.counts.Map(),
		TotalAmount:    c.totalAmount,
		AutoCash:       c.autoCash,
		CashDifference: c.cashDifference,
		AutoQR:         c.autoQR,
		ActualQR:       c.actualQR,
		QRDifference:   c.qrDifference,
		SubmittedBy:    copyPtr(c.submittedBy),
		SubmittedAt:    copyPtr(c.submittedAt),
		VerifiedBy:     copyPtr(c.verifiedBy),
		VerifiedAt:     copyPtr(c.verifiedAt),
		Checklist:      c.checklist,
		OwnerName:      c.ownerName,
		Note:           c.note,
		StaffID:        c.staffID,
		CreatedAt:      c.createdAt,
		UpdatedAt:      c.updatedAt,
		Version:        c.version,
	}
}

// RestoreCashClosing rebuilds a closing from persistence and rejects rows
// whose stored totals disagree with their counts.
func RestoreCashClosing(s Snapshot) (*CashClosing, error) {
	counts, err := NewCounts(s.Counts)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(
		s.ID.Validate(),
		s.BusinessDate.Validate(),
		s.ClosingType.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	var invariantErrs []error
	if counts.Total() != s.TotalAmount {
		invariantErrs = append(invariantErrs, errs.NewValueIsInvalidErrorWithCause(
			"totalAmount", errors.New("total amount does not match denomination counts"),
		))
	}
	if s.CashDifference != s.TotalAmount-s.AutoCash {
		invariantErrs = append(invariantErrs, errs.NewValueIsInvalidErrorWithCause(
			"cashDifference", errors.New("cash difference does not match total and ledger cash"),
		))
	}
	if s.QRDifference != s.ActualQR-s.AutoQR {
		invariantErrs = append(invariantErrs, errs.NewValueIsInvalidErrorWithCause(
			"qrDifference", errors.New("QR difference does not match actual and ledger QR"),
		))
	}
	if err = errors.Join(invariantErrs...); err != nil {
		return nil, err
	}

	return &CashClosing{
		id:             s.ID,
		businessDate:   s.BusinessDate,
		closingType:    s.ClosingType,
		status:         s.Status,
		counts:         counts,
		totalAmount:    s.TotalAmount,
		autoCash:       s.AutoCash,
		cashDifference: s.CashDifference,
		autoQR:         s.AutoQR,
		actualQR:       s.ActualQR,
		qrDifference:   s.QRDifference,
		submittedBy:    copyPtr(s.SubmittedBy),
		submittedAt:    copyPtr(s.SubmittedAt),
		verifiedBy:     copyPtr(s.VerifiedBy),
		verifiedAt:     copyPtr(s.VerifiedAt),
		checklist:      s.Checklist,
		ownerName:      s.OwnerName,
		note:           s.Note,
		staffID:        s.StaffID,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		version:        s.Version,
		isConstructed:  true,
	}, nil
}
