//go:build unit

package booking_test

import (
	"testing"

	"courtside/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		errIs   error
	}{
		{name: "midnight", input: "00:00", minutes: 0},
		{name: "morning", input: "06:30", minutes: 390},
		{name: "end of day boundary", input: "24:00", minutes: 1440},
		{name: "hour out of range", input: "25:00", errIs: booking.ErrInvalidTimeOfDay},
		{name: "minute out of range", input: "10:75", errIs: booking.ErrInvalidTimeOfDay},
		{name: "past the day boundary", input: "24:01", errIs: booking.ErrInvalidTimeOfDay},
		{name: "not a time", input: "abc", errIs: booking.ErrInvalidTimeOfDay},
		{name: "trailing characters", input: "10:00xyz", errIs: booking.ErrInvalidTimeOfDay},
		{name: "unpadded digits", input: "7:5", errIs: booking.ErrInvalidTimeOfDay},
		{name: "missing separator", input: "10000", errIs: booking.ErrInvalidTimeOfDay},
		{name: "surrounding whitespace", input: " 10:00", errIs: booking.ErrInvalidTimeOfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := booking.ParseTimeOfDay(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, tod.Minutes())
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod, err := booking.NewTimeOfDay(9, 5)
	require.NoError(t, err)
	assert.Equal(t, "09:05", tod.String())
}

func TestIntervalOverlaps(t *testing.T) {
	mustInterval := func(start, end string) booking.Interval {
		iv, err := booking.ParseInterval(start, end)
		require.NoError(t, err)
		return iv
	}

	tests := []struct {
		name     string
		a        booking.Interval
		b        booking.Interval
		overlaps bool
	}{
		{
			name:     "partial overlap",
			a:        mustInterval("10:00", "11:00"),
			b:        mustInterval("10:30", "11:30"),
			overlaps: true,
		},
		{
			name:     "identical intervals",
			a:        mustInterval("10:00", "11:00"),
			b:        mustInterval("10:00", "11:00"),
			overlaps: true,
		},
		{
			name:     "contained interval",
			a:        mustInterval("09:00", "12:00"),
			b:        mustInterval("10:00", "11:00"),
			overlaps: true,
		},
		{
			name:     "touching endpoints",
			a:        mustInterval("10:00", "11:00"),
			b:        mustInterval("11:00", "12:00"),
			overlaps: false,
		},
		{
			name:     "touching endpoints reversed",
			a:        mustInterval("11:00", "12:00"),
			b:        mustInterval("10:00", "11:00"),
			overlaps: false,
		},
		{
			name:     "disjoint",
			a:        mustInterval("08:00", "09:00"),
			b:        mustInterval("14:00", "15:00"),
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	t.Run("start must precede end", func(t *testing.T) {
		start, err := booking.NewTimeOfDay(11, 0)
		require.NoError(t, err)
		end, err := booking.NewTimeOfDay(10, 0)
		require.NoError(t, err)

		_, err = booking.NewInterval(start, end)
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("zero-length interval is invalid", func(t *testing.T) {
		tod, err := booking.NewTimeOfDay(10, 0)
		require.NoError(t, err)

		_, err = booking.NewInterval(tod, tod)
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("duration in minutes", func(t *testing.T) {
		iv, err := booking.ParseInterval("10:00", "11:30")
		require.NoError(t, err)
		assert.Equal(t, 90, iv.DurationMinutes())
		assert.Equal(t, "10:00-11:30", iv.String())
	})
}

func TestPriceFor(t *testing.T) {
	tests := []struct {
		name         string
		pricePerHour int64
		start        string
		end          string
		wantCents    int64
	}{
		{name: "full hour", pricePerHour: 2000, start: "10:00", end: "11:00", wantCents: 2000},
		{name: "ninety minutes", pricePerHour: 2000, start: "10:00", end: "11:30", wantCents: 3000},
		{name: "half hour", pricePerHour: 1500, start: "10:00", end: "10:30", wantCents: 750},
		{name: "free court", pricePerHour: 0, start: "10:00", end: "11:00", wantCents: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := booking.ParseInterval(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, booking.PriceFor(tt.pricePerHour, iv).Cents())
		})
	}
}
