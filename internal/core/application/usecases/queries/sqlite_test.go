package queries_test

import (
	"testing"

	"luggage/internal/adapters/out/postgres/cashclosingrepo"
	"luggage/internal/adapters/out/postgres/orderrepo"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(string, string) {}

// openSQLite returns a private in-memory database with the service schema.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to ":memory:" would open its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&cashclosingrepo.CashClosingDTO{},
		&cashclosingrepo.AuditDTO{},
	))
	return db
}
