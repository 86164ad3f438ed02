package request

import (
	"courtside/internal/domain/booking"
	"courtside/internal/domain/schedule"

	"github.com/google/uuid"
)

type WeeklySlotEntry struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Available   bool   `json:"is_available"`
	Maintenance bool   `json:"is_maintenance"`
}

type UpsertWeeklySlotsRequest struct {
	Slots []WeeklySlotEntry `json:"slots" binding:"required,min=1,dive"`
}

// ToDomain validates each entry and the template as a whole. Overlapping
// entries on the same weekday are rejected here, before anything is written.
func (r UpsertWeeklySlotsRequest) ToDomain(courtID uuid.UUID) ([]schedule.WeeklySlot, error) {
	entries := make([]schedule.WeeklySlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		day, err := schedule.NewDayOfWeek(s.DayOfWeek)
		if err != nil {
			return nil, err
		}
		iv, err := booking.ParseInterval(s.StartTime, s.EndTime)
		if err != nil {
			return nil, err
		}
		entries = append(entries, schedule.NewWeeklySlot(courtID, day, iv, s.Available, s.Maintenance))
	}
	if err := schedule.ValidateTemplate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}
