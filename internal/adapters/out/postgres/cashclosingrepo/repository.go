package cashclosingrepo

import (
	"context"
	"errors"
	"fmt"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCashClosingRepository implements CashClosingRepository using GORM.
type GormCashClosingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates written in the current unit of work.
type aggregateTracker interface {
	TrackAggregate(kind, status string)
}

func NewGormCashClosingRepository(db *gorm.DB, tracker aggregateTracker) *GormCashClosingRepository {
	return &GormCashClosingRepository{db: db, tracker: tracker}
}

// Add inserts a closing. A second closing for the same business date and
// type is a uniqueness conflict even when two inserts race.
func (r *GormCashClosingRepository) Add(ctx context.Context, aggregate *cashclosing.CashClosing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewUniquenessConflictErrorWithCause("cashClosing", naturalKey(dto), err)
		}
		return err
	}

	r.tracker.TrackAggregate("cash_closing", dto.WorkflowStatus)
	return nil
}

// Update replaces the whole row when the stored version still matches and
// increments it.
func (r *GormCashClosingRepository) Update(ctx context.Context, aggregate *cashclosing.CashClosing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&CashClosingDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewUniquenessConflictErrorWithCause("cashClosing", naturalKey(dto), result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&CashClosingDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("cashClosing", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause(
			"cashClosing", fmt.Errorf("closing %s is no longer at version %d", aggregate.ID(), expected),
		)
	}

	r.tracker.TrackAggregate("cash_closing", dto.WorkflowStatus)
	return nil
}

func (r *GormCashClosingRepository) Get(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads a closing and locks its row until the transaction ends.
func (r *GormCashClosingRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCashClosingRepository) get(db *gorm.DB, id kernel.UUID) (*cashclosing.CashClosing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CashClosingDTO
	if err := db.First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cashClosing", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsFor reports whether another closing already uses the key.
func (r *GormCashClosingRepository) ExistsFor(
	ctx context.Context,
	date kernel.BusinessDate,
	closingType cashclosing.ClosingType,
	exclude *kernel.UUID,
) (bool, error) {
	if err := errors.Join(date.Validate(), closingType.Validate()); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).
		Model(&CashClosingDTO{}).
		Where("business_date = ? AND closing_type = ?", date.String(), closingType.String())
	if exclude != nil {
		query = query.Where("id <> ?", exclude.Raw())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func naturalKey(dto CashClosingDTO) string {
	return dto.BusinessDate + "/" + dto.ClosingType
}
