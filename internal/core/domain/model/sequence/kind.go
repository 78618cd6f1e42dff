package sequence

import (
	"fmt"
	"strings"

	"luggage/internal/pkg/errs"
)

// Kind selects one of the independent per-day counters.
type Kind int

const (
	// UnknownKind catches uninitialised values.
	UnknownKind Kind = iota

	// OrderKind numbers storage orders: YYYYMMDD-NNN.
	OrderKind

	// TagKind numbers the claim tags handed to customers.
	TagKind
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "UNKNOWN",
		OrderKind:   "ORDER",
		TagKind:     "TAG",
	}
}

// ParseKind maps the persisted name back to a Kind.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for k, name := range getKindStrings() {
		if k != UnknownKind && name == normalized {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("counterKind", fmt.Errorf("%q is not a counter kind", s))
}

func (k Kind) Validate() error {
	if k != OrderKind && k != TagKind {
		return errs.NewValueIsInvalidErrorWithCause("counterKind", fmt.Errorf("%d is not a valid counter kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "UNKNOWN"
}
