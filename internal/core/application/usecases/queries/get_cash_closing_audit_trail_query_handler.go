package queries

import (
	"context"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetCashClosingAuditTrailQueryHandler struct {
	db *gorm.DB
}

func NewGetCashClosingAuditTrailQueryHandler(db *gorm.DB) GetCashClosingAuditTrailQueryHandler {
	return GetCashClosingAuditTrailQueryHandler{db: db}
}

// Handle returns an empty slice for a closing with no audit rows; it does
// not check that the closing exists.
func (h GetCashClosingAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetCashClosingAuditTrailQuery,
) ([]GetCashClosingAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetCashClosingAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			action,
			reason,
			staff_id,
			payload,
			created_at
		FROM cash_closing_audits
		WHERE closing_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.ClosingID().Raw()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry   GetCashClosingAuditTrailQueryResponse
			id      uuid.UUID
			staffID uuid.UUID
			action  string
			payload datatypes.JSONType[cashclosing.AuditPayload]
		)
		if err = rows.Scan(&id, &action, &entry.Reason, &staffID, &payload, &entry.CreatedAt); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromRaw(id); err != nil {
			return nil, err
		}
		if entry.StaffID, err = kernel.UUIDFromRaw(staffID); err != nil {
			return nil, err
		}
		if entry.Action, err = cashclosing.ParseAuditAction(action); err != nil {
			return nil, err
		}
		entry.Payload = payload.Data()

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
