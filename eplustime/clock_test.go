package eplustime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, month, day, hour, minute int) Clock {
	t.Helper()
	c, err := New(month, day, hour, minute)
	require.NoError(t, err)
	return c
}

func TestFromStandard(t *testing.T) {
	tests := []struct {
		name         string
		standard     time.Time
		month, day   int
		hour, minute int
	}{
		{"mid hour shifts hour up", time.Date(2013, 4, 26, 15, 10, 0, 0, time.UTC), 4, 26, 16, 10},
		{"minute zero becomes sixty of previous hour", time.Date(2013, 4, 26, 5, 0, 0, 0, time.UTC), 4, 26, 5, 60},
		{"midnight wraps to previous day", time.Date(2013, 4, 26, 0, 0, 0, 0, time.UTC), 4, 25, 24, 60},
		{"new year wraps to dec 31", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), 12, 31, 24, 60},
		{"end of day", time.Date(2013, 4, 26, 23, 59, 0, 0, time.UTC), 4, 26, 24, 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromStandard(tt.standard)
			assert.Equal(t, tt.month, c.Month())
			assert.Equal(t, tt.day, c.Day())
			assert.Equal(t, tt.hour, c.Hour())
			assert.Equal(t, tt.minute, c.Minute())
		})
	}
}

func TestFromStandardRoundTrip(t *testing.T) {
	// For every conventional (hour, minute), the stored pair must be
	// (hour+1, minute) except minute 0, which maps to (hour, 60): the
	// previous hour in engine numbering.
	base := time.Date(2013, 6, 15, 0, 0, 0, 0, time.UTC)
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 15, 30, 59} {
			c := FromStandard(base.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute))
			if minute == 0 {
				expectedHour := hour
				if hour == 0 {
					// midnight belongs to the previous day's hour 24
					expectedHour = 24
				}
				assert.Equal(t, expectedHour, c.Hour(), "hour=%d minute=0", hour)
				assert.Equal(t, 60, c.Minute(), "hour=%d minute=0", hour)
			} else {
				assert.Equal(t, hour+1, c.Hour(), "hour=%d minute=%d", hour, minute)
				assert.Equal(t, minute, c.Minute(), "hour=%d minute=%d", hour, minute)
			}
		}
	}
}

func TestToStandard(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		hour, minute     int
		expected         time.Time
	}{
		{"plain conversion", 2013, 4, 26, 16, 10, time.Date(2013, 4, 26, 15, 10, 0, 0, time.UTC)},
		{"minute sixty advances an hour", 2013, 4, 26, 5, 60, time.Date(2013, 4, 26, 5, 0, 0, 0, time.UTC)},
		{"end of day rolls to next day", 2013, 4, 26, 24, 60, time.Date(2013, 4, 27, 0, 0, 0, 0, time.UTC)},
		{"end of month rolls to next month", 2013, 4, 30, 24, 60, time.Date(2013, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"dec 31 24:60 pins the year back", 2013, 12, 31, 24, 60, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"leap day on a leap year", 2020, 2, 29, 12, 30, time.Date(2020, 2, 29, 11, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToStandard(tt.year, tt.month, tt.day, tt.hour, tt.minute)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToStandardRangeErrors(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		hour, minute     int
	}{
		{"month zero", 2013, 0, 1, 1, 1},
		{"month thirteen", 2013, 13, 1, 1, 1},
		{"day zero", 2013, 1, 0, 1, 1},
		{"day thirty-two", 2013, 1, 32, 1, 1},
		{"feb thirty", 2013, 2, 30, 1, 1},
		{"hour zero", 2013, 1, 1, 0, 1},
		{"hour twenty-five", 2013, 1, 1, 25, 1},
		{"minute zero", 2013, 1, 1, 1, 0},
		{"minute sixty-one", 2013, 1, 1, 1, 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToStandard(tt.year, tt.month, tt.day, tt.hour, tt.minute)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	t.Run("feb 29 on a non-leap year is a leap year error", func(t *testing.T) {
		_, err := ToStandard(2019, 2, 29, 12, 30)
		var lerr *LeapYearError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, 2019, lerr.Year)
		assert.Equal(t, 2, lerr.Month)
		assert.Equal(t, 29, lerr.Day)
		assert.NotErrorIs(t, err, ErrOutOfRange)
	})
}

func TestNew(t *testing.T) {
	t.Run("stores components as given", func(t *testing.T) {
		c := mustClock(t, 4, 26, 5, 60)
		assert.Equal(t, 4, c.Month())
		assert.Equal(t, 26, c.Day())
		assert.Equal(t, 5, c.Hour())
		assert.Equal(t, 60, c.Minute())
	})

	t.Run("rejects out-of-range components", func(t *testing.T) {
		_, err := New(4, 26, 25, 10)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = New(4, 26, 5, 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("feb 29 is representable", func(t *testing.T) {
		c := mustClock(t, 2, 29, 24, 60)
		assert.Equal(t, 29, c.Day())
	})
}

func TestOrdering(t *testing.T) {
	first := mustClock(t, 1, 1, 1, 1)
	last := mustClock(t, 12, 31, 24, 60)

	t.Run("full-year span", func(t *testing.T) {
		// Dec-31 24:60 pins back to Jan-1 00:00, so in standard terms it is
		// the earliest instant of the reference year.
		assert.True(t, last.Before(first))
		assert.True(t, first.After(last))
		assert.Equal(t, -1, last.Compare(first))
	})

	t.Run("within a day", func(t *testing.T) {
		morning := mustClock(t, 6, 15, 9, 30)
		evening := mustClock(t, 6, 15, 21, 30)
		assert.True(t, morning.Before(evening))
		assert.True(t, evening.After(morning))
	})

	t.Run("construction path irrelevant for equality", func(t *testing.T) {
		explicit := mustClock(t, 4, 26, 16, 10)
		converted := FromStandard(time.Date(2013, 4, 26, 15, 10, 0, 0, time.UTC))
		assert.True(t, explicit.Equal(converted))
		assert.Equal(t, 0, explicit.Compare(converted))
	})

	t.Run("minute sixty equals next hour's zero", func(t *testing.T) {
		sixty := mustClock(t, 4, 26, 5, 60)
		assert.Equal(t, time.Date(referenceYear, 4, 26, 5, 0, 0, 0, time.UTC), sixty.Standard())
	})
}

func TestDateTime(t *testing.T) {
	t.Run("reprojects onto a target year", func(t *testing.T) {
		c := mustClock(t, 4, 26, 16, 10)
		got, err := c.DateTime(2019)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2019, 4, 26, 15, 10, 0, 0, time.UTC), got)
	})

	t.Run("leap day end-of-day degrades on a non-leap year", func(t *testing.T) {
		c := mustClock(t, 2, 29, 24, 60)
		got, err := c.DateTime(2019)
		require.NoError(t, err)
		// day 28 at the equivalent instant: Feb-28 24:60 = Mar-1 00:00
		assert.Equal(t, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("leap day end-of-day unchanged on a leap year", func(t *testing.T) {
		c := mustClock(t, 2, 29, 24, 60)
		got, err := c.DateTime(2020)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("other leap day values fail on a non-leap year", func(t *testing.T) {
		c := mustClock(t, 2, 29, 12, 30)
		_, err := c.DateTime(2019)
		var lerr *LeapYearError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, 2019, lerr.Year)

		got, err := c.DateTime(2020)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2020, 2, 29, 11, 30, 0, 0, time.UTC), got)
	})

	t.Run("century non-leap year", func(t *testing.T) {
		c := mustClock(t, 2, 29, 24, 60)
		got, err := c.DateTime(2100)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2100, 3, 1, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestClockString(t *testing.T) {
	c := mustClock(t, 4, 26, 16, 10)
	assert.Equal(t, "month=4, day=26, hour=16, minute=10", c.String())
}
