package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

const (
	MaxBagQty         = 99
	MaxCompanionCount = 99
)

var (
	ErrBagsIsNotConstructed     = errors.New("Bags must be created via NewBags")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer")

	orderIDPattern = regexp.MustCompile(`^(` + regexp.QuoteMeta(sequence.ManualPrefix) + `)?\d{8}-\d{3,}$`)
)

// ID is the human readable order number, YYYYMMDD-NNN or M-YYYYMMDD-NNN.
type ID string

func ParseID(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("orderID")
	}
	if !orderIDPattern.MatchString(trimmed) {
		return "", errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%q is not an order number", s))
	}
	return ID(trimmed), nil
}

func (id ID) String() string { return string(id) }

// IsManual reports whether the order was keyed in by staff.
func (id ID) IsManual() bool {
	return strings.HasPrefix(string(id), sequence.ManualPrefix)
}

// Bags is the checked-in luggage. Paired suitcase and backpack units form
// sets billed at the set rate.
type Bags struct {
	suitcase int
	backpack int

	guard guard.ConstructorGuard
}

// NewBags requires both counts in [0, MaxBagQty] and at least one bag.
func NewBags(suitcase, backpack int) (Bags, error) {
	if suitcase < 0 || suitcase > MaxBagQty {
		return Bags{}, errs.NewValueIsOutOfRangeError("suitcaseQty", suitcase, 0, MaxBagQty)
	}
	if backpack < 0 || backpack > MaxBagQty {
		return Bags{}, errs.NewValueIsOutOfRangeError("backpackQty", backpack, 0, MaxBagQty)
	}
	if suitcase == 0 && backpack == 0 {
		return Bags{}, errs.NewValueIsRequiredErrorWithCause("bags", errors.New("at least one bag is required"))
	}
	return Bags{suitcase: suitcase, backpack: backpack, guard: guard.NewConstructorGuard()}, nil
}

func (b Bags) Validate() error {
	return b.guard.Validate(ErrBagsIsNotConstructed)
}

func (b Bags) Suitcase() int { return b.suitcase }
func (b Bags) Backpack() int { return b.backpack }

// Sets is min(suitcase, backpack).
func (b Bags) Sets() int {
	return min(b.suitcase, b.backpack)
}

// Customer identifies who dropped the luggage off.
type Customer struct {
	name           string
	phone          string
	companionCount int

	guard guard.ConstructorGuard
}

func NewCustomer(name, phone string, companionCount int) (Customer, error) {
	c := Customer{
		name:           strings.TrimSpace(name),
		phone:          strings.TrimSpace(phone),
		companionCount: companionCount,
		guard:          guard.NewConstructorGuard(),
	}

	var nameErr, phoneErr, countErr error
	if c.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if c.phone == "" {
		phoneErr = errs.NewValueIsRequiredError("phone")
	}
	if companionCount < 1 || companionCount > MaxCompanionCount {
		countErr = errs.NewValueIsOutOfRangeError("companionCount", companionCount, 1, MaxCompanionCount)
	}
	if err := errors.Join(nameErr, phoneErr, countErr); err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) Name() string { return c.name }
func (c Customer) Phone() string { return c.phone }
func (c Customer) CompanionCount() int { return c.companionCount }
