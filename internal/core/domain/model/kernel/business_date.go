package kernel

import (
	"errors"
	"fmt"
	"time"

	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

const (
	businessDateLayout        = "2006-01-02"
	businessDateCompactLayout = "20060102"
)

var ErrBusinessDateIsNotConstructed = errors.New("BusinessDate must be created via NewBusinessDate or ParseBusinessDate")

// BusinessDate is a calendar day of the shop. It carries no time zone; the
// ShopCalendar maps instants onto business dates and back.
type BusinessDate struct {
	year  int
	month time.Month
	day   int

	guard guard.ConstructorGuard
}

// NewBusinessDate builds a date and rejects impossible days such as Feb 30.
func NewBusinessDate(year int, month time.Month, day int) (BusinessDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause(
			"businessDate",
			fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, int(month), day),
		)
	}

	return BusinessDate{year: year, month: month, day: day, guard: guard.NewConstructorGuard()}, nil
}

// ParseBusinessDate accepts both YYYY-MM-DD and YYYYMMDD.
func ParseBusinessDate(s string) (BusinessDate, error) {
	layout := businessDateLayout
	if len(s) == len(businessDateCompactLayout) {
		layout = businessDateCompactLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause("businessDate", err)
	}

	return NewBusinessDate(t.Year(), t.Month(), t.Day())
}

// MustParseBusinessDate panics on malformed input. Intended for fixtures.
func MustParseBusinessDate(s string) BusinessDate {
	d, err := ParseBusinessDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d BusinessDate) Validate() error {
	return d.guard.Validate(ErrBusinessDateIsNotConstructed)
}

func (d BusinessDate) Year() int { return d.year }
func (d BusinessDate) Month() time.Month { return d.month }
func (d BusinessDate) Day() int { return d.day }
func (d BusinessDate) IsEqual(o BusinessDate) bool {
	return d.year == o.year && d.month == o.month && d.day == o.day
}

// Before reports whether d is strictly earlier than o.
func (d BusinessDate) Before(o BusinessDate) bool {
	return d.midnightUTC().Before(o.midnightUTC())
}

// AddDays shifts the date by n calendar days.
func (d BusinessDate) AddDays(n int) BusinessDate {
	t := d.midnightUTC().AddDate(0, 0, n)
	return BusinessDate{year: t.Year(), month: t.Month(), day: t.Day(), guard: guard.NewConstructorGuard()}
}

// DaysUntil returns the number of calendar days from d to o (negative when o precedes d).
func (d BusinessDate) DaysUntil(o BusinessDate) int {
	return int(o.midnightUTC().Sub(d.midnightUTC()).Hours() / 24)
}

// String renders YYYY-MM-DD, the form used for cash closing keys.
func (d BusinessDate) String() string {
	return d.midnightUTC().Format(businessDateLayout)
}

// Compact renders YYYYMMDD, the form used in order ids and counter keys.
func (d BusinessDate) Compact() string {
	return d.midnightUTC().Format(businessDateCompactLayout)
}

func (d BusinessDate) midnightUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
