// Package order implements the luggage storage Order aggregate.
//
// The package includes:
//   - Order: the aggregate root holding customer, bags, schedule and prices
//   - Status: the PaymentPending -> Paid -> PickedUp state machine with undo
//   - PaymentMethod: CASH or PAY_QR
//   - PrepaidQuote: the prepaid fields computed for one duration and tier
//   - Bags, Customer, ID: validated value objects
//
// Key business rules:
//   - final amount equals prepaid amount plus extra amount at all times
//   - sets are min(suitcase, backpack)
//   - prices are frozen while the order is picked up
//   - undoing a pickup restores the exact pre-pickup price fields
package order
