// Package ports defines the persistence and infrastructure contracts the
// luggage counter core depends on. Adapters in internal/adapters implement
// them; command and query handlers consume them.
package ports

import (
	"context"
	"time"

	"luggage/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates as whole rows.
type OrderRepository interface {
	// Add inserts a new order. A duplicate order number is reported as a
	// uniqueness conflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored row when its version still matches the
	// aggregate's, and bumps the stored version. A stale version is a
	// version conflict; a missing row is not found.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate loads an order and holds a row lock until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)
}

// OrderRetention removes orders past their retention period.
type OrderRetention interface {
	// DeleteCreatedBefore deletes every order created strictly before
	// cutoff and returns how many rows were removed.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
