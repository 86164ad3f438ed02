package readstore

import (
	"context"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/schedule"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

const findWeeklySlotsSQL = `
SELECT id, court_id, day_of_week, start_time, end_time, is_available, is_maintenance
FROM weekly_slots
WHERE court_id = $1 AND day_of_week = $2
ORDER BY start_time`

// FindForCourtDay is the owner view: every template entry including the ones
// flagged unavailable or under maintenance.
func (r *ScheduleReadStore) FindForCourtDay(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]*queries.WeeklySlotView, error) {
	rows, err := r.db.Query(ctx, findWeeklySlotsSQL, courtID, day.Int())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load weekly slots", err)
	}
	defer rows.Close()

	var result []*queries.WeeklySlotView
	for rows.Next() {
		var (
			view       queries.WeeklySlotView
			start, end pgtype.Time
		)
		if err := rows.Scan(
			&view.ID,
			&view.CourtID,
			&view.DayOfWeek,
			&start,
			&end,
			&view.Available,
			&view.Maintenance,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekly slot", err)
		}
		view.StartTime = pgconv.TimeOfDayFromPgtype(start).String()
		view.EndTime = pgconv.TimeOfDayFromPgtype(end).String()
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read weekly slots", err)
	}
	return result, nil
}

const bookableIntervalsSQL = `
SELECT start_time, end_time
FROM weekly_slots
WHERE court_id = $1 AND day_of_week = $2 AND is_available AND NOT is_maintenance
ORDER BY start_time`

// BookableIntervals is the customer view of the template for one weekday.
func (r *ScheduleReadStore) BookableIntervals(ctx context.Context, courtID uuid.UUID, day schedule.DayOfWeek) ([]booking.Interval, error) {
	rows, err := r.db.Query(ctx, bookableIntervalsSQL, courtID, day.Int())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load bookable intervals", err)
	}
	defer rows.Close()

	var result []booking.Interval
	for rows.Next() {
		var start, end pgtype.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan bookable interval", err)
		}
		iv, err := booking.NewInterval(pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end))
		if err != nil {
			return nil, infra.WrapRepoErr("stored interval is invalid", err)
		}
		result = append(result, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookable intervals", err)
	}
	return result, nil
}
