package cashclosing

import (
	"errors"
	"strings"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"
)

var ErrCashClosingIsNotConstructed = errors.New("CashClosing must be created via NewCashClosing")

// Entry is what staff type in when counting the drawer.
type Entry struct {
	BusinessDate kernel.BusinessDate
	ClosingType  ClosingType
	Counts       Counts
	// ReportedQR is the QR total read off the terminal. Nil or negative
	// means "use the ledger figure".
	ReportedQR *int64
	OwnerName  string
	Note       string
}

// CashClosing is a drawer count for one business date and closing type,
// reconciled against the order ledger and reviewed by a second staff
// member before it is locked.
//
// Invariants:
//   - (business date, closing type) is unique across closings
//   - total amount is the denomination-weighted sum of counts
//   - cash difference = total - ledger cash; QR difference = actual QR - ledger QR
//   - a locked closing has a verifier different from its submitter
type CashClosing struct {
	id           kernel.UUID
	businessDate kernel.BusinessDate
	closingType  ClosingType
	status       WorkflowStatus
	counts       Counts

	totalAmount    int64
	autoCash       int64
	cashDifference int64
	autoQR         int64
	actualQR       int64
	qrDifference   int64

	submittedBy *kernel.UUID
	submittedAt *time.Time
	verifiedBy  *kernel.UUID
	verifiedAt  *time.Time
	checklist   Checklist

	ownerName string
	note      string
	staffID   kernel.UUID
	createdAt time.Time
	updatedAt time.Time
	version   int

	isConstructed bool
}

// NewCashClosing creates a DRAFT closing and its CREATE audit entry. The
// caller is responsible for checking that no closing exists for the same
// business date and type.
func NewCashClosing(
	id kernel.UUID,
	entry Entry,
	sales LedgerSales,
	actor kernel.Actor,
	now time.Time,
) (*CashClosing, AuditEntry, error) {
	if err := errors.Join(id.Validate(), actor.Validate()); err != nil {
		return nil, AuditEntry{}, err
	}

	c := &CashClosing{
		id:            id,
		status:        Draft,
		createdAt:     now,
		version:       1,
		isConstructed: true,
	}
	if err := c.apply(entry, sales, actor, now); err != nil {
		return nil, AuditEntry{}, err
	}
	return c, c.audit(ActionCreate, actor, "", now), nil
}

// Update recounts the closing and sends it back to DRAFT.
//
// A LOCKED closing may only be reopened by an admin with a reason, and is
// audited as ADMIN_UNLOCK_UPDATE. A SUBMITTED closing may only be changed
// by its submitter or an admin; one with no recorded submitter only by an
// admin.
func (c *CashClosing) Update(
	entry Entry,
	sales LedgerSales,
	actor kernel.Actor,
	reason string,
	now time.Time,
) (AuditEntry, error) {
	if err := errors.Join(c.Validate(), actor.Validate()); err != nil {
		return AuditEntry{}, err
	}

	action := ActionUpdate
	switch c.status {
	case Locked:
		if !actor.IsAdmin() {
			return AuditEntry{}, errs.NewAuthorizationError(actor.StaffID().String(), "only an admin can edit a locked closing")
		}
		if strings.TrimSpace(reason) == "" {
			return AuditEntry{}, errs.NewValueIsRequiredError("reason")
		}
		action = ActionAdminUnlockUpdate
	case Submitted:
		if !actor.IsAdmin() && !actor.Is(c.submittedBy) {
			return AuditEntry{}, errs.NewAuthorizationError(
				actor.StaffID().String(), "only the submitter or an admin can edit a submitted closing",
			)
		}
	}

	next := *c
	if err := next.apply(entry, sales, actor, now); err != nil {
		return AuditEntry{}, err
	}
	next.status = Draft
	next.clearReview()
	next.submittedBy, next.submittedAt = nil, nil
	*c = next

	return c.audit(action, actor, reason, now), nil
}

// Submit hands the closing over for review.
func (c *CashClosing) Submit(actor kernel.Actor, now time.Time) (AuditEntry, error) {
	if err := errors.Join(c.Validate(), actor.Validate()); err != nil {
		return AuditEntry{}, err
	}
	if c.status == Locked {
		return AuditEntry{}, errs.NewStateConflictError("submit", c.status.String())
	}

	submitter := actor.StaffID()
	submittedAt := now
	c.status = Submitted
	c.submittedBy = &submitter
	c.submittedAt = &submittedAt
	c.clearReview()
	c.touch(actor, now)

	return c.audit(ActionSubmit, actor, "", now), nil
}

// VerifyAndLock is the second pair of eyes: someone other than the
// submitter confirms every checklist item and locks the closing.
func (c *CashClosing) VerifyAndLock(checklist Checklist, actor kernel.Actor, now time.Time) (AuditEntry, error) {
	if err := errors.Join(c.Validate(), actor.Validate()); err != nil {
		return AuditEntry{}, err
	}
	if c.status != Submitted {
		return AuditEntry{}, errs.NewStateConflictError("verify", c.status.String())
	}
	if c.submittedBy == nil {
		return AuditEntry{}, errs.NewAuthorizationError(actor.StaffID().String(), "closing has no submitter")
	}
	if actor.Is(c.submittedBy) {
		return AuditEntry{}, errs.NewAuthorizationError(actor.StaffID().String(), "submitter cannot verify their own closing")
	}
	if !checklist.Complete() {
		return AuditEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"checklist", errors.New("every checklist item must be confirmed before locking"),
		)
	}

	verifier := actor.StaffID()
	verifiedAt := now
	c.checklist = fullChecklist()
	c.status = Locked
	c.verifiedBy = &verifier
	c.verifiedAt = &verifiedAt
	c.touch(actor, now)

	return c.audit(ActionVerifyLock, actor, "", now), nil
}

func (c *CashClosing) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCashClosingIsNotConstructed
	}
	return nil
}

func (c *CashClosing) ID() kernel.UUID { return c.id }
func (c *CashClosing) BusinessDate() kernel.BusinessDate { return c.businessDate }
func (c *CashClosing) ClosingType() ClosingType { return c.closingType }
func (c *CashClosing) Status() WorkflowStatus { return c.status }
func (c *CashClosing) Counts() Counts { return c.counts }
func (c *CashClosing) TotalAmount() int64 { return c.totalAmount }
func (c *CashClosing) AutoCash() int64 { return c.autoCash }
func (c *CashClosing) CashDifference() int64 { return c.cashDifference }
func (c *CashClosing) AutoQR() int64 { return c.autoQR }
func (c *CashClosing) ActualQR() int64 { return c.actualQR }
func (c *CashClosing) QRDifference() int64 { return c.qrDifference }
func (c *CashClosing) Checklist() Checklist { return c.checklist }
func (c *CashClosing) OwnerName() string { return c.ownerName }
func (c *CashClosing) Note() string { return c.note }
func (c *CashClosing) StaffID() kernel.UUID { return c.staffID }
func (c *CashClosing) CreatedAt() time.Time { return c.createdAt }
func (c *CashClosing) UpdatedAt() time.Time { return c.updatedAt }
func (c *CashClosing) Version() int { return c.version }

func (c *CashClosing) SubmittedBy() *kernel.UUID { return copyPtr(c.submittedBy) }
func (c *CashClosing) SubmittedAt() *time.Time { return copyPtr(c.submittedAt) }
func (c *CashClosing) VerifiedBy() *kernel.UUID { return copyPtr(c.verifiedBy) }
func (c *CashClosing) VerifiedAt() *time.Time { return copyPtr(c.verifiedAt) }

// apply validates entry and recomputes every derived amount. It writes
// nothing unless all checks pass.
func (c *CashClosing) apply(entry Entry, sales LedgerSales, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(entry.BusinessDate.Validate(), entry.ClosingType.Validate()); err != nil {
		return err
	}

	actualQR := sales.QR
	if entry.ReportedQR != nil && *entry.ReportedQR >= 0 {
		actualQR = *entry.ReportedQR
	}
	if actualQR < 0 {
		return errs.NewValueIsOutOfRangeError("actualQR", actualQR, 0, "unbounded")
	}

	owner := strings.TrimSpace(entry.OwnerName)
	if owner == "" {
		owner = actor.StaffID().String()
	}

	total := entry.Counts.Total()
	c.businessDate = entry.BusinessDate
	c.closingType = entry.ClosingType
	c.counts = Counts{byDenom: entry.Counts.Map()}
	c.totalAmount = total
	c.autoCash = sales.Cash
	c.cashDifference = total - sales.Cash
	c.autoQR = sales.QR
	c.actualQR = actualQR
	c.qrDifference = actualQR - sales.QR
	c.ownerName = owner
	c.note = strings.TrimSpace(entry.Note)
	c.touch(actor, now)
	return nil
}

func (c *CashClosing) clearReview() {
	c.verifiedBy, c.verifiedAt = nil, nil
	c.checklist = Checklist{}
}

func (c *CashClosing) touch(actor kernel.Actor, now time.Time) {
	c.staffID = actor.StaffID()
	c.updatedAt = now
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
