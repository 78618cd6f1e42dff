package kernel

import (
	"errors"
	"fmt"
	"time"

	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

const (
	DefaultTimeZone  = "Asia/Tokyo"
	DefaultOpenHour  = 9
	DefaultCloseHour = 21
)

var ErrShopCalendarIsNotConstructed = errors.New("ShopCalendar must be created via NewShopCalendar")

// ShopCalendar pins the shop to a fixed time zone and its business hours.
// All local-calendar arithmetic (business dates, storage days, the pickup
// window) goes through it.
type ShopCalendar struct {
	location  *time.Location
	openHour  int
	closeHour int

	guard guard.ConstructorGuard
}

// NewShopCalendar requires 0 <= openHour < closeHour <= 24.
func NewShopCalendar(location *time.Location, openHour, closeHour int) (ShopCalendar, error) {
	if location == nil {
		return ShopCalendar{}, errs.NewValueIsRequiredError("location")
	}
	if openHour < 0 || openHour > 23 {
		return ShopCalendar{}, errs.NewValueIsOutOfRangeError("openHour", openHour, 0, 23)
	}
	if closeHour <= openHour || closeHour > 24 {
		return ShopCalendar{}, errs.NewValueIsOutOfRangeError("closeHour", closeHour, openHour+1, 24)
	}

	return ShopCalendar{
		location:  location,
		openHour:  openHour,
		closeHour: closeHour,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// LoadShopCalendar resolves an IANA zone name before building the calendar.
func LoadShopCalendar(zone string, openHour, closeHour int) (ShopCalendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return ShopCalendar{}, errs.NewValueIsInvalidErrorWithCause("timeZone", err)
	}
	return NewShopCalendar(loc, openHour, closeHour)
}

// DefaultShopCalendar is Asia/Tokyo, 09:00-21:00.
func DefaultShopCalendar() ShopCalendar {
	cal, err := LoadShopCalendar(DefaultTimeZone, DefaultOpenHour, DefaultCloseHour)
	if err != nil {
		// tzdata missing from the host; fall back to the fixed JST offset.
		cal, _ = NewShopCalendar(time.FixedZone("JST", 9*60*60), DefaultOpenHour, DefaultCloseHour)
	}
	return cal
}

func (c ShopCalendar) Validate() error {
	return c.guard.Validate(ErrShopCalendarIsNotConstructed)
}

func (c ShopCalendar) Location() *time.Location { return c.location }
func (c ShopCalendar) OpenHour() int { return c.openHour }
func (c ShopCalendar) CloseHour() int { return c.closeHour }

// Local converts t into the shop's zone.
func (c ShopCalendar) Local(t time.Time) time.Time {
	return t.In(c.location)
}

// BusinessDateOf returns the local calendar day containing t.
func (c ShopCalendar) BusinessDateOf(t time.Time) BusinessDate {
	local := c.Local(t)
	return BusinessDate{
		year:  local.Year(),
		month: local.Month(),
		day:   local.Day(),
		guard: guard.NewConstructorGuard(),
	}
}

// DayRange returns the half-open UTC interval [start, end) covering the
// business date in the shop's zone.
func (c ShopCalendar) DayRange(d BusinessDate) (time.Time, time.Time) {
	start := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, c.location)
	end := time.Date(d.year, d.month, d.day+1, 0, 0, 0, 0, c.location)
	return start.UTC(), end.UTC()
}

// WithinBusinessHours reports whether the local time of day of t lies in
// [open:00, close:00], both ends inclusive.
func (c ShopCalendar) WithinBusinessHours(t time.Time) bool {
	local := c.Local(t)
	sinceMidnight := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())

	return sinceMidnight >= time.Duration(c.openHour)*time.Hour &&
		sinceMidnight <= time.Duration(c.closeHour)*time.Hour
}

// BusinessHoursLabel renders the window as HH:MM-HH:MM for error messages.
func (c ShopCalendar) BusinessHoursLabel() string {
	return fmt.Sprintf("%02d:00-%02d:00", c.openHour, c.closeHour)
}
