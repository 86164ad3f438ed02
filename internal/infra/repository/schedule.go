package repository

import (
	"context"

	"courtside/internal/domain/schedule"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"
)

type ScheduleRepository struct{}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// Matched on the natural key; existing rows only have their flags toggled,
// which keeps template entries stable across repeated owner submissions.
const upsertWeeklySlotSQL = `
INSERT INTO weekly_slots (id, court_id, day_of_week, start_time, end_time, is_available, is_maintenance)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (court_id, day_of_week, start_time, end_time)
DO UPDATE SET
    is_available   = EXCLUDED.is_available,
    is_maintenance = EXCLUDED.is_maintenance,
    updated_at     = now()`

func (r *ScheduleRepository) Upsert(ctx context.Context, dbtx db.DBTX, entries []schedule.WeeklySlot) error {
	for _, e := range entries {
		_, err := dbtx.Exec(ctx, upsertWeeklySlotSQL,
			e.ID(),
			e.CourtID(),
			e.Day().Int(),
			pgconv.TimeOfDayToPgtype(e.Interval().Start()),
			pgconv.TimeOfDayToPgtype(e.Interval().End()),
			e.Available(),
			e.Maintenance(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to upsert weekly slot", err, kindFromPgErr(err))
		}
	}
	return nil
}
