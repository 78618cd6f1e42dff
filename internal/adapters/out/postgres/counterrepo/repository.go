// Package counterrepo stores the per-day ORDER and TAG counters.
package counterrepo

import (
	"context"
	"errors"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/sequence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterDTO is one (kind, business date) counter row.
type CounterDTO struct {
	Kind         string `gorm:"type:varchar(16);primaryKey"`
	BusinessDate string `gorm:"type:varchar(10);primaryKey"`
	Value        int    `gorm:"not null"`
}

func (CounterDTO) TableName() string {
	return "sequence_counters"
}

// GormCounterRepository increments counters with a single upsert, so two
// transactions drawing from the same key serialise on its row.
type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next creates the counter at 1 or increments it and returns the new value.
func (r *GormCounterRepository) Next(ctx context.Context, kind sequence.Kind, date kernel.BusinessDate) (int, error) {
	if err := errors.Join(kind.Validate(), date.Validate()); err != nil {
		return 0, err
	}

	dto := CounterDTO{Kind: kind.String(), BusinessDate: date.String(), Value: 1}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "kind"}, {Name: "business_date"}},
				DoUpdates: clause.Assignments(map[string]any{
					"value": gorm.Expr("sequence_counters.value + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "value"}}},
		).
		Create(&dto).Error
	if err != nil {
		return 0, err
	}
	return dto.Value, nil
}

// Current returns the last issued value, zero when nothing was drawn yet.
func (r *GormCounterRepository) Current(ctx context.Context, kind sequence.Kind, date kernel.BusinessDate) (int, error) {
	if err := errors.Join(kind.Validate(), date.Validate()); err != nil {
		return 0, err
	}

	var dto CounterDTO
	err := r.db.WithContext(ctx).
		Where("kind = ? AND business_date = ?", kind.String(), date.String()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dto.Value, nil
}
