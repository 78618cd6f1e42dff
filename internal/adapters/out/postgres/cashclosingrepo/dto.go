// Package cashclosingrepo persists cash closings and their audit trail.
package cashclosingrepo

import (
	"time"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CashClosingDTO is one row of cash_closings. (business_date, closing_type)
// is unique.
type CashClosingDTO struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey"`
	BusinessDate   string                            `gorm:"type:varchar(10);not null;uniqueIndex:idx_cash_closings_key"`
	ClosingType    string                            `gorm:"type:varchar(32);not null;uniqueIndex:idx_cash_closings_key"`
	WorkflowStatus string                            `gorm:"type:varchar(16);not null"`
	Counts         datatypes.JSONType[map[int64]int] `gorm:"not null"`
	TotalAmount    int64
	AutoCash       int64
	CashDifference int64
	AutoQR         int64      `gorm:"column:auto_qr"`
	ActualQR       int64      `gorm:"column:actual_qr"`
	QRDifference   int64      `gorm:"column:qr_difference"`
	SubmittedBy    *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt    *time.Time
	VerifiedBy     *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt     *time.Time
	Checklist      ChecklistDTO `gorm:"embedded;embeddedPrefix:check_"`
	OwnerName      string       `gorm:"type:varchar(255)"`
	Note           string
	StaffID        uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
	Version        int       `gorm:"not null;default:1"`
}

func (CashClosingDTO) TableName() string {
	return "cash_closings"
}

// ChecklistDTO holds the verifier's confirmations.
type ChecklistDTO struct {
	CashMatch    bool
	QRMatch      bool `gorm:"column:qr_match"`
	PendingItems bool
	HandoverNote bool
}

// AuditDTO is one insert-only row of cash_closing_audits.
type AuditDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClosingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(32);not null"`
	Reason    string
	Payload   datatypes.JSONType[cashclosing.AuditPayload] `gorm:"not null"`
	StaffID   uuid.UUID                                    `gorm:"type:uuid;not null"`
	CreatedAt time.Time                                    `gorm:"index;autoCreateTime:false"`
}

func (AuditDTO) TableName() string {
	return "cash_closing_audits"
}

func fromDomain(c *cashclosing.CashClosing) CashClosingDTO {
	s := c.Snapshot()
	return CashClosingDTO{
		ID:             s.ID.Raw(),
		BusinessDate:   s.BusinessDate.String(),
		ClosingType:    s.ClosingType.String(),
		WorkflowStatus: s.Status.String(),
		Counts:         datatypes.NewJSONType(s.Counts),
		TotalAmount:    s.TotalAmount,
		AutoCash:       s.AutoCash,
		CashDifference: s.CashDifference,
		AutoQR:         s.AutoQR,
		ActualQR:       s.ActualQR,
		QRDifference:   s.QRDifference,
		SubmittedBy:    rawPtr(s.SubmittedBy),
		SubmittedAt:    utcPtr(s.SubmittedAt),
		VerifiedBy:     rawPtr(s.VerifiedBy),
		VerifiedAt:     utcPtr(s.VerifiedAt),
		Checklist: ChecklistDTO{
			CashMatch:    s.Checklist.CashMatch,
			QRMatch:      s.Checklist.QRMatch,
			PendingItems: s.Checklist.PendingItems,
			HandoverNote: s.Checklist.HandoverNote,
		},
		OwnerName: s.OwnerName,
		Note:      s.Note,
		StaffID:   s.StaffID.Raw(),
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
		Version:   s.Version,
	}
}

func toDomain(dto CashClosingDTO) (*cashclosing.CashClosing, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	date, err := kernel.ParseBusinessDate(dto.BusinessDate)
	if err != nil {
		return nil, err
	}
	closingType, err := cashclosing.ParseClosingType(dto.ClosingType)
	if err != nil {
		return nil, err
	}
	status, err := cashclosing.ParseWorkflowStatus(dto.WorkflowStatus)
	if err != nil {
		return nil, err
	}
	staffID, err := kernel.UUIDFromRaw(dto.StaffID)
	if err != nil {
		return nil, err
	}
	submittedBy, err := uuidPtr(dto.SubmittedBy)
	if err != nil {
		return nil, err
	}
	verifiedBy, err := uuidPtr(dto.VerifiedBy)
	if err != nil {
		return nil, err
	}

	return cashclosing.RestoreCashClosing(cashclosing.Snapshot{
		ID:             id,
		BusinessDate:   date,
		ClosingType:    closingType,
		Status:         status,
		Counts:         dto.Counts.Data(),
		TotalAmount:    dto.TotalAmount,
		AutoCash:       dto.AutoCash,
		CashDifference: dto.CashDifference,
		AutoQR:         dto.AutoQR,
		ActualQR:       dto.ActualQR,
		QRDifference:   dto.QRDifference,
		SubmittedBy:    submittedBy,
		SubmittedAt:    dto.SubmittedAt,
		VerifiedBy:     verifiedBy,
		VerifiedAt:     dto.VerifiedAt,
		Checklist: cashclosing.Checklist{
			CashMatch:    dto.Checklist.CashMatch,
			QRMatch:      dto.Checklist.QRMatch,
			PendingItems: dto.Checklist.PendingItems,
			HandoverNote: dto.Checklist.HandoverNote,
		},
		OwnerName: dto.OwnerName,
		Note:      dto.Note,
		StaffID:   staffID,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	})
}

func auditFromDomain(e cashclosing.AuditEntry) AuditDTO {
	return AuditDTO{
		ID:        e.ID.Raw(),
		ClosingID: e.ClosingID.Raw(),
		Action:    e.Action.String(),
		Reason:    e.Reason,
		Payload:   datatypes.NewJSONType(e.Payload),
		StaffID:   e.StaffID.Raw(),
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func rawPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Raw()
	return &raw
}

func uuidPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromRaw(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
