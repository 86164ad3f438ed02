package queries

import (
	"context"

	"courtside/internal/domain/schedule"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	// WeeklySlots is the owner view of one court's template for a weekday,
	// including entries flagged unavailable or under maintenance.
	WeeklySlots(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]*WeeklySlotView, error)
}

type ScheduleViewRepo interface {
	FindForCourtDay(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]*WeeklySlotView, error)
}

type scheduleQueriesImpl struct {
	repo   ScheduleViewRepo
	courts CourtViewRepo
}

func NewScheduleQueries(repo ScheduleViewRepo, courts CourtViewRepo) ScheduleQueries {
	return &scheduleQueriesImpl{repo: repo, courts: courts}
}

func (q *scheduleQueriesImpl) WeeklySlots(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]*WeeklySlotView, error) {
	if _, err := q.courts.FindByID(ctx, courtID); err != nil {
		return nil, err
	}
	return q.repo.FindForCourtDay(ctx, courtID, day)
}
