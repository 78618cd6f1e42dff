// Package membership models the loyalty pass tiers and the fixed prepaid
// discount each one grants.
package membership

import "strings"

// Tier is ordered by rank: None < Blue < Silver < Gold < Platinum < Black.
type Tier int

const (
	None Tier = iota
	Blue
	Silver
	Gold
	Platinum
	// Black waives the whole prepaid amount instead of a fixed discount.
	Black
)

type tierInfo struct {
	name     string
	discount int64
}

func getTierInfo() map[Tier]tierInfo {
	return map[Tier]tierInfo{
		None:     {name: "NONE", discount: 0},
		Blue:     {name: "BLUE", discount: 100},
		Silver:   {name: "SILVER", discount: 200},
		Gold:     {name: "GOLD", discount: 300},
		Platinum: {name: "PLATINUM", discount: 400},
		Black:    {name: "BLACK", discount: 0},
	}
}

// All lists tiers in rank order.
func All() []Tier {
	return []Tier{None, Blue, Silver, Gold, Platinum, Black}
}

// Normalize maps a persisted or user supplied name to a Tier. Unknown and
// empty values become None rather than failing.
func Normalize(raw string) Tier {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for tier, info := range getTierInfo() {
		if info.name == value {
			return tier
		}
	}
	return None
}

// Known reports whether t is one of the declared tiers.
func (t Tier) Known() bool {
	_, ok := getTierInfo()[t]
	return ok
}

// Normalized folds undeclared values into None.
func (t Tier) Normalized() Tier {
	if !t.Known() {
		return None
	}
	return t
}

// IsFullWaiver reports whether the tier discounts the entire base amount.
func (t Tier) IsFullWaiver() bool {
	return t == Black
}

// FixedDiscount is the flat discount of the tier; 0 for None and Black.
func (t Tier) FixedDiscount() int64 {
	return getTierInfo()[t.Normalized()].discount
}

// Discount returns the amount taken off basePrepaid:
// min(fixed or full amount, base), never negative.
func (t Tier) Discount(basePrepaid int64) int64 {
	base := max(basePrepaid, 0)
	if t.Normalized().IsFullWaiver() {
		return base
	}
	return min(base, max(t.FixedDiscount(), 0))
}

func (t Tier) String() string {
	return getTierInfo()[t.Normalized()].name
}
