// Package kernel holds the value objects shared by every aggregate of the
// luggage shop: identifiers, business dates, the shop calendar (fixed zone
// plus business hours) and the acting staff member.
package kernel
