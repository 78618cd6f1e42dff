// Package services holds the domain services of the luggage counter.
//
// The package includes:
//   - PricingEngine: daily rates, duration discounts, membership discounts,
//     business hours and storage day counting
//   - OrderLifecycle: check-in pricing and the order transitions that need
//     to reprice (pickup, schedule edits, prepaid recalculation)
//
// Both are pure and hold only configuration.
package services
