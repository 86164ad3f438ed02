//go:build unit

package booking_test

import (
	"testing"
	"time"

	"courtside/internal/domain/booking"
	"courtside/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithIntervals([2]string{"10:00", "11:00"}, [2]string{"14:00", "15:30"}).
			WithPricePerHour(2000).
			BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, booking.PaymentPaid, actual.PaymentStatus())
		assert.Len(t, actual.Slots(), 2)
		assert.Equal(t, int64(2000+3000), actual.Total().Cents())
		assert.True(t, actual.IsActive())
	})

	t.Run("per-slot amounts", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithIntervals([2]string{"10:00", "11:30"}).
			WithPricePerHour(2000).
			BuildDomain()
		require.NoError(t, err)

		require.Len(t, actual.Slots(), 1)
		slot := actual.Slots()[0]
		assert.Equal(t, 90, slot.DurationMinutes())
		assert.Equal(t, int64(3000), slot.Amount().Cents())
	})

	t.Run("empty interval batch", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithIntervals().BuildDomain()
		require.ErrorIs(t, err, booking.ErrNoIntervals)
	})

	t.Run("intervals overlapping within the batch", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			WithIntervals([2]string{"10:00", "11:00"}, [2]string{"10:30", "11:30"}).
			BuildDomain()
		require.ErrorIs(t, err, booking.ErrIntraBatchClash)
	})

	t.Run("touching intervals within the batch are fine", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithIntervals([2]string{"10:00", "11:00"}, [2]string{"11:00", "12:00"}).
			BuildDomain()
		require.NoError(t, err)
		assert.Len(t, actual.Slots(), 2)
	})
}

func TestBookingStartsAt(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	actual, err := builder.NewBookingBuilder().
		WithDate(date).
		WithIntervals([2]string{"14:00", "15:00"}, [2]string{"09:00", "10:00"}).
		BuildDomain()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), actual.StartsAt(),
		"earliest slot start anchors the booking")
}

func TestBookingCancel(t *testing.T) {
	const leadTime = 24 * time.Hour
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	newBooking := func(t *testing.T) *booking.Booking {
		b, err := builder.NewBookingBuilder().
			WithDate(date).
			WithIntervals([2]string{"10:00", "11:00"}).
			BuildDomain()
		require.NoError(t, err)
		return b
	}
	startsAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("cancel ahead of the window", func(t *testing.T) {
		b := newBooking(t)
		now := startsAt.Add(-25 * time.Hour)

		require.NoError(t, b.Cancel(now, leadTime))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
		assert.False(t, b.IsActive())
	})

	t.Run("cancel exactly at the window boundary", func(t *testing.T) {
		b := newBooking(t)
		now := startsAt.Add(-leadTime)

		require.NoError(t, b.Cancel(now, leadTime))
	})

	t.Run("cancel inside the window", func(t *testing.T) {
		b := newBooking(t)
		now := startsAt.Add(-23 * time.Hour)

		err := b.Cancel(now, leadTime)
		require.ErrorIs(t, err, booking.ErrCancelTooLate)
		assert.Equal(t, booking.StatusConfirmed, b.Status(), "failed cancel must not change state")
	})

	t.Run("cancel twice", func(t *testing.T) {
		b := newBooking(t)
		now := startsAt.Add(-48 * time.Hour)

		require.NoError(t, b.Cancel(now, leadTime))
		require.ErrorIs(t, b.Cancel(now, leadTime), booking.ErrAlreadyCancelled)
	})

	t.Run("cancel a completed booking", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.Complete())

		err := b.Cancel(startsAt.Add(-48*time.Hour), leadTime)
		require.ErrorIs(t, err, booking.ErrAlreadyCompleted)
	})
}

func TestBookingStatusTransitions(t *testing.T) {
	t.Run("confirmed booking completes", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Complete())
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("completed booking cannot complete again", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Complete())

		require.ErrorIs(t, b.Complete(), booking.ErrInvalidTransition)
	})

	t.Run("status strings round-trip through the constructor", func(t *testing.T) {
		for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
			status, err := booking.NewStatus(s)
			require.NoError(t, err)
			assert.Equal(t, s, status.String())
		}
		_, err := booking.NewStatus("unknown")
		require.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}
