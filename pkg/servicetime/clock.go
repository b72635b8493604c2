// Package servicetime is the single place where instants are converted to the
// service's local calendar. Every component that needs a calendar day, a weekday
// or a time of day goes through Clock.
package servicetime

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// DefaultZone is the zone the booking service operates in.
const DefaultZone = "Asia/Jerusalem"

// Clock converts between instants and the service-local calendar.
type Clock struct {
	loc *time.Location
}

// New loads the named IANA zone.
func New(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("servicetime: load zone %q: %w", zone, err)
	}
	return &Clock{loc: loc}, nil
}

// MustNew is New that panics on error.
func MustNew(zone string) *Clock {
	c, err := New(zone)
	if err != nil {
		panic(err)
	}
	return c
}

// Location returns the service zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Local converts t to the service zone.
func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

// CalendarDay returns the service-local calendar day of t.
func (c *Clock) CalendarDay(t time.Time) types.Date {
	return types.DateOf(t.In(c.loc))
}

// TimeOfDay returns the service-local wall-clock time of t.
func (c *Clock) TimeOfDay(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(c.loc))
}

// Weekday returns the service-local weekday of t, 0 = Sunday.
func (c *Clock) Weekday(t time.Time) int {
	return int(t.In(c.loc).Weekday())
}

// IsToday reports whether d is the service-local calendar day of now.
func (c *Clock) IsToday(d types.Date, now time.Time) bool {
	return c.CalendarDay(now).Equal(d)
}

// At returns the instant of wall-clock time ts on day d in the service zone.
// 24:00 resolves to midnight of the following day.
func (c *Clock) At(d types.Date, ts types.TimeString) time.Time {
	return time.Date(d.Year, d.Month, d.Day, ts.Minutes()/60, ts.Minutes()%60, 0, 0, c.loc)
}

// DayBounds returns [start, end) of day d in the service zone.
func (c *Clock) DayBounds(d types.Date) (time.Time, time.Time) {
	start := d.In(c.loc)
	return start, d.AddDays(1).In(c.loc)
}
