package cashclosing

import (
	"strings"
	"time"

	"luggage/internal/core/domain/model/kernel"
)

// AuditPayload is the closing state captured right after a mutation.
type AuditPayload struct {
	BusinessDate   string  `json:"business_date"`
	ClosingType    string  `json:"closing_type"`
	WorkflowStatus string  `json:"workflow_status"`
	TotalAmount    int64   `json:"total_amount"`
	CashDifference int64   `json:"cash_difference"`
	QRDifference   int64   `json:"qr_difference"`
	SubmittedBy    *string `json:"submitted_by_staff_id,omitempty"`
	VerifiedBy     *string `json:"verified_by_staff_id,omitempty"`
	Checklist
}

// AuditEntry is one append-only record of a closing mutation. Entries are
// produced by the aggregate and persisted in the same unit of work.
type AuditEntry struct {
	ID        kernel.UUID
	ClosingID kernel.UUID
	Action    AuditAction
	Reason    string
	Payload   AuditPayload
	StaffID   kernel.UUID
	CreatedAt time.Time
}

func (c *CashClosing) audit(action AuditAction, actor kernel.Actor, reason string, now time.Time) AuditEntry {
	return AuditEntry{
		ID:        kernel.NewUUID(),
		ClosingID: c.id,
		Action:    action,
		Reason:    strings.TrimSpace(reason),
		Payload:   c.payload(),
		StaffID:   actor.StaffID(),
		CreatedAt: now,
	}
}

func (c *CashClosing) payload() AuditPayload {
	p := AuditPayload{
		BusinessDate:   c.businessDate.String(),
		ClosingType:    c.closingType.String(),
		WorkflowStatus: c.status.String(),
		TotalAmount:    c.totalAmount,
		CashDifference: c.cashDifference,
		QRDifference:   c.qrDifference,
		Checklist:      c.checklist,
	}
	if c.submittedBy != nil {
		s := c.submittedBy.String()
		p.SubmittedBy = &s
	}
	if c.verifiedBy != nil {
		s := c.verifiedBy.String()
		p.VerifiedBy = &s
	}
	return p
}
