package queries

import (
	"errors"
	"time"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/guard"
)

var ErrGetCashClosingAuditTrailQueryIsNotConstructed = errors.New(
	"GetCashClosingAuditTrailQuery must be created via NewGetCashClosingAuditTrailQuery constructor",
)

// GetCashClosingAuditTrailQuery lists every audit entry of one closing,
// newest first.
type GetCashClosingAuditTrailQuery struct {
	closingID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetCashClosingAuditTrailQuery(closingID kernel.UUID) (GetCashClosingAuditTrailQuery, error) {
	if err := closingID.Validate(); err != nil {
		return GetCashClosingAuditTrailQuery{}, err
	}
	return GetCashClosingAuditTrailQuery{closingID: closingID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCashClosingAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetCashClosingAuditTrailQueryIsNotConstructed)
}

func (q GetCashClosingAuditTrailQuery) ClosingID() kernel.UUID { return q.closingID }

// GetCashClosingAuditTrailQueryResponse is one audit entry as stored.
type GetCashClosingAuditTrailQueryResponse struct {
	ID        kernel.UUID
	Action    cashclosing.AuditAction
	Reason    string
	StaffID   kernel.UUID
	Payload   cashclosing.AuditPayload
	CreatedAt time.Time
}
