package postgres

import (
	"luggage/internal/adapters/out/postgres/cashclosingrepo"
	"luggage/internal/adapters/out/postgres/counterrepo"
	"luggage/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&counterrepo.CounterDTO{},
		&cashclosingrepo.CashClosingDTO{},
		&cashclosingrepo.AuditDTO{},
	)
}
