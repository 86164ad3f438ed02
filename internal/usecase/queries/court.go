package queries

import (
	"context"
	"sort"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/schedule"

	"github.com/google/uuid"
)

type CourtQueries interface {
	List(ctx context.Context) ([]*CourtView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
	// Availability projects the weekly template onto a concrete date and
	// flags each template interval that an active booking overlaps.
	Availability(ctx context.Context, courtID uuid.UUID, date time.Time) ([]AvailabilitySlot, error)
}

type CourtViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
	List(ctx context.Context) ([]*CourtView, error)
}

type ActiveIntervalRepo interface {
	ActiveIntervals(ctx context.Context, courtID uuid.UUID, date time.Time) ([]booking.Interval, error)
}

type BookableIntervalRepo interface {
	BookableIntervals(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]booking.Interval, error)
}

type courtQueriesImpl struct {
	courts    CourtViewRepo
	bookings  ActiveIntervalRepo
	schedules BookableIntervalRepo
}

func NewCourtQueries(courts CourtViewRepo, bookings ActiveIntervalRepo, schedules BookableIntervalRepo) CourtQueries {
	return &courtQueriesImpl{
		courts:    courts,
		bookings:  bookings,
		schedules: schedules,
	}
}

func (q *courtQueriesImpl) List(ctx context.Context) ([]*CourtView, error) {
	return q.courts.List(ctx)
}

func (q *courtQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error) {
	return q.courts.FindByID(ctx, id)
}

func (q *courtQueriesImpl) Availability(ctx context.Context, courtID uuid.UUID, date time.Time) ([]AvailabilitySlot, error) {
	if _, err := q.courts.FindByID(ctx, courtID); err != nil {
		return nil, err
	}

	template, err := q.schedules.BookableIntervals(ctx, courtID, schedule.DayOfWeekFromDate(date))
	if err != nil {
		return nil, err
	}
	booked, err := q.bookings.ActiveIntervals(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]AvailabilitySlot, 0, len(template))
	for _, iv := range template {
		slot := AvailabilitySlot{
			StartTime: iv.Start().String(),
			EndTime:   iv.End().String(),
		}
		for _, b := range booked {
			if iv.Overlaps(b) {
				slot.Booked = true
				break
			}
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}
