package cashclosingrepo

import (
	"context"
	"errors"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAuditRepository appends audit entries. Rows are never updated.
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry cashclosing.AuditEntry) error {
	if err := errors.Join(entry.ID.Validate(), entry.ClosingID.Validate(), entry.StaffID.Validate()); err != nil {
		return err
	}
	if entry.Action == cashclosing.UnknownAction {
		return errs.NewValueIsRequiredError("auditAction")
	}

	dto := auditFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
