// Package eplustime converts between conventional calendar timestamps and
// the EnergyPlus clock convention, which numbers hours 1–24 instead of
// 0–23 and expresses "top of the hour" as minute 60 of the previous hour
// rather than minute 0. Stored values are year-independent and can be
// reprojected onto any target year.
package eplustime

import (
	"errors"
	"fmt"
	"time"
)

// referenceYear anchors ordering and equality comparisons. 2000 is a leap
// year, so Feb-29 values stay representable.
const referenceYear = 2000

// ErrOutOfRange is returned when a clock component is outside its domain:
// month 1–12, day valid for the month, hour 1–24, minute 1–60.
var ErrOutOfRange = errors.New("component out of range")

// LeapYearError reports a calendar construction failure caused by Feb-29
// on a non-leap year, the one combination naive calendar code mishandles
// when combined with the engine's 24:60 end-of-day convention.
type LeapYearError struct {
	Year  int
	Month int
	Day   int
}

func (e *LeapYearError) Error() string {
	return fmt.Sprintf("no such day (probable leap year problem): year=%d, month=%d, day=%d",
		e.Year, e.Month, e.Day)
}

// Clock is an immutable month/day/hour/minute in the engine convention.
// Minute 0 is never stored; it is always re-expressed as minute 60 of the
// previous hour. The zero Clock is not meaningful; build one with New or
// FromStandard.
type Clock struct {
	month, day, hour, minute int

	// standard is the value projected onto the reference year; it is the
	// sole basis for ordering.
	standard time.Time
}

// New builds a Clock from explicit engine-convention components, failing
// fast with ErrOutOfRange (or *LeapYearError for Feb-29) on out-of-domain
// input.
func New(month, day, hour, minute int) (Clock, error) {
	standard, err := ToStandard(referenceYear, month, day, hour, minute)
	if err != nil {
		return Clock{}, err
	}
	return Clock{month: month, day: day, hour: hour, minute: minute, standard: standard}, nil
}

// FromStandard converts a conventional timestamp to the engine convention.
// The year (and anything below minutes) is discarded. A conventional
// minute of 0 becomes minute 60 of the previous hour; the stored hour is
// the conventional hour plus one.
func FromStandard(t time.Time) Clock {
	minute := t.Minute()
	if minute == 0 {
		t = t.Add(-time.Hour)
		minute = 60
	}
	c := Clock{month: int(t.Month()), day: t.Day(), hour: t.Hour() + 1, minute: minute}
	standard, err := ToStandard(referenceYear, c.month, c.day, c.hour, c.minute)
	if err != nil {
		// the components came from a real timestamp and the reference
		// year is a leap year, so projection cannot fail
		panic(err)
	}
	c.standard = standard
	return c
}

// ToStandard converts engine-convention components to a conventional UTC
// timestamp in the given year. Minute 60 is treated as minute 0 one hour
// later; the stored hour is one ahead of the conventional hour. The hour
// is applied as an offset so month/day boundaries roll correctly, and the
// year is pinned back exactly once afterwards: Dec-31 24:60 lands on Jan-1
// 00:00 of the same year, not the next.
func ToStandard(year, month, day, hour, minute int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d: %w", month, ErrOutOfRange)
	}
	if hour < 1 || hour > 24 {
		return time.Time{}, fmt.Errorf("hour %d: %w", hour, ErrOutOfRange)
	}
	if minute < 1 || minute > 60 {
		return time.Time{}, fmt.Errorf("minute %d: %w", minute, ErrOutOfRange)
	}
	if day < 1 || day > daysInMonth(year, month) {
		if month == 2 && day == 29 {
			return time.Time{}, &LeapYearError{Year: year, Month: month, Day: day}
		}
		return time.Time{}, fmt.Errorf("day %d: %w", day, ErrOutOfRange)
	}

	hourOffset := 0
	if minute == 60 {
		minute = 0
		hourOffset = 1
	}

	t := time.Date(year, time.Month(month), day, hour-1, minute, 0, 0, time.UTC)
	t = t.Add(time.Duration(hourOffset) * time.Hour)
	if t.Year() != year {
		t = time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	}
	return t, nil
}

// DateTime reprojects the stored value onto the given year. The single
// lossy case: (Feb, 29, 24, 60) on a non-leap year degrades to day 28
// instead of failing. Any other Feb-29 value on a non-leap year returns a
// *LeapYearError.
func (c Clock) DateTime(year int) (time.Time, error) {
	day := c.day
	if !isLeap(year) && c.month == 2 && c.day == 29 && c.hour == 24 && c.minute == 60 {
		day = 28
	}
	return ToStandard(year, c.month, day, c.hour, c.minute)
}

// Month returns the stored month, 1–12.
func (c Clock) Month() int { return c.month }

// Day returns the stored day of month.
func (c Clock) Day() int { return c.day }

// Hour returns the stored hour, 1–24.
func (c Clock) Hour() int { return c.hour }

// Minute returns the stored minute, 1–60.
func (c Clock) Minute() int { return c.minute }

// Standard returns the value projected onto the reference year.
func (c Clock) Standard() time.Time { return c.standard }

// Equal reports whether both clocks denote the same instant, regardless of
// how they were constructed.
func (c Clock) Equal(other Clock) bool { return c.standard.Equal(other.standard) }

// Before reports whether c is earlier than other.
func (c Clock) Before(other Clock) bool { return c.standard.Before(other.standard) }

// After reports whether c is later than other.
func (c Clock) After(other Clock) bool { return c.standard.After(other.standard) }

// Compare returns -1, 0 or 1 ordering c against other.
func (c Clock) Compare(other Clock) int { return c.standard.Compare(other.standard) }

func (c Clock) String() string {
	return fmt.Sprintf("month=%d, day=%d, hour=%d, minute=%d", c.month, c.day, c.hour, c.minute)
}

func daysInMonth(year, month int) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
