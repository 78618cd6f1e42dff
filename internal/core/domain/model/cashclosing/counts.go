package cashclosing

import (
	"fmt"
	"slices"

	"luggage/internal/pkg/errs"
)

// Denominations lists the yen bills and coins counted in the drawer,
// largest first.
func Denominations() []int64 {
	return []int64{10000, 5000, 2000, 1000, 500, 100, 50, 10, 5, 1}
}

// Counts is the number of pieces per denomination. Missing denominations
// count as zero.
type Counts struct {
	byDenom map[int64]int
}

// NewCounts rejects negative counts and denominations outside Denominations.
func NewCounts(byDenom map[int64]int) (Counts, error) {
	known := Denominations()
	c := Counts{byDenom: make(map[int64]int, len(known))}
	for denom, count := range byDenom {
		if !slices.Contains(known, denom) {
			return Counts{}, errs.NewValueIsInvalidErrorWithCause(
				"denomination", fmt.Errorf("%d is not a yen denomination", denom),
			)
		}
		if count < 0 {
			return Counts{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("count%d", denom), count, 0, "unbounded")
		}
		c.byDenom[denom] = count
	}
	return c, nil
}

// Get returns the count for denom.
func (c Counts) Get(denom int64) int {
	return c.byDenom[denom]
}

// Total is the sum of denomination times count.
func (c Counts) Total() int64 {
	var total int64
	for _, denom := range Denominations() {
		total += denom * int64(c.byDenom[denom])
	}
	return total
}

// Map returns a copy with every denomination present.
func (c Counts) Map() map[int64]int {
	out := make(map[int64]int, len(Denominations()))
	for _, denom := range Denominations() {
		out[denom] = c.byDenom[denom]
	}
	return out
}

// Checklist is what the verifier confirms before locking.
type Checklist struct {
	CashMatch    bool `json:"check_cash_match"`
	QRMatch      bool `json:"check_qr_match"`
	PendingItems bool `json:"check_pending_items"`
	HandoverNote bool `json:"check_handover_note"`
}

func (c Checklist) Complete() bool {
	return c.CashMatch && c.QRMatch && c.PendingItems && c.HandoverNote
}

func fullChecklist() Checklist {
	return Checklist{CashMatch: true, QRMatch: true, PendingItems: true, HandoverNote: true}
}

// LedgerSales is the prepaid revenue recorded by orders for one business
// date, split by payment method.
type LedgerSales struct {
	Cash int64
	QR   int64
}

func (s LedgerSales) Total() int64 {
	return s.Cash + s.QR
}
