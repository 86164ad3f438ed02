//go:build unit || e2e

package builder

import (
	"time"

	"courtside/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CourtID           uuid.UUID
	PricePerHourCents int64
	UserID            uuid.UUID
	Date              time.Time
	Intervals         [][2]string
	Notes             string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CourtID:           uuid.New(),
		PricePerHourCents: 2000,
		UserID:            uuid.New(),
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Intervals:         [][2]string{{"10:00", "11:00"}},
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildIntervals() ([]booking.Interval, error) {
	intervals := make([]booking.Interval, 0, len(b.Intervals))
	for _, pair := range b.Intervals {
		iv, err := booking.ParseInterval(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	intervals, err := b.BuildIntervals()
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(
		booking.CourtSpec{ID: b.CourtID, PricePerHourCents: b.PricePerHourCents},
		b.UserID,
		b.Date,
		intervals,
		booking.NewNotes(b.Notes),
	)
}

// Fluent builder methods
func (b *BookingBuilder) WithDate(date time.Time) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithPricePerHour(cents int64) *BookingBuilder {
	b.PricePerHourCents = cents
	return b
}

func (b *BookingBuilder) WithIntervals(pairs ...[2]string) *BookingBuilder {
	b.Intervals = pairs
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = notes
	return b
}

func (b *BookingBuilder) WithUser(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}
