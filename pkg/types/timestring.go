package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	minutesPerDay = 24 * 60
	layoutHHMM    = "15:04"
)

var (
	// ErrInvalidTimeString is returned when a value cannot be parsed as HH:MM.
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when arithmetic leaves the 00:00..24:00 range.
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString is a wall-clock time of day with minute precision, rendered as HH:MM.
// The value 24:00 is allowed and means the end of the day; it is only meaningful
// as the end of a range.
type TimeString struct {
	minutes int
}

// NewTimeString extracts the time of day from t using t's own location.
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromString parses "HH:MM". "24:00" is accepted.
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" {
		return TimeString{minutes: minutesPerDay}, nil
	}

	t, err := time.Parse(layoutHHMM, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(t), nil
}

// MustTimeString is NewTimeStringFromString that panics on error. Intended for
// constants and tests.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes}, nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes returns t shifted by n minutes. Crossing midnight is an error.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

func (t TimeString) Equal(other TimeString) bool {
	return t.minutes == other.minutes
}

// Compare returns -1, 0 or 1.
func (t TimeString) Compare(other TimeString) int {
	switch {
	case t.minutes < other.minutes:
		return -1
	case t.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether t is 00:00.
func (t TimeString) IsZero() bool {
	return t.minutes == 0
}

func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeString) UnmarshalText(data []byte) error {
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as "HH:MM:SS" strings
// or as time.Time depending on the driver path.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	return t.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	return t.String(), nil
}
