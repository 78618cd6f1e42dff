package ports

import (
	"context"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/sequence"
)

// CounterRepository hands out per-day sequence numbers.
type CounterRepository interface {
	// Next atomically increments the (kind, date) counter, creating it at
	// 1, and returns the new value. Concurrent callers never observe the
	// same value. The increment is part of the caller's transaction.
	Next(ctx context.Context, kind sequence.Kind, date kernel.BusinessDate) (int, error)
}
