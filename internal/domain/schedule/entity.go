// Package schedule models the owner-authored weekly availability template:
// per-court, per-day-of-week open intervals that the availability projection
// reads. Entries are toggled, never hard-deleted.
package schedule

import (
	"errors"
	"time"

	"courtside/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidDayOfWeek  = errors.New("day of week must be 0 (Sunday) through 6 (Saturday)")
	ErrTemplateOverlap   = errors.New("template intervals for one day must not overlap")
	ErrNoTemplateEntries = errors.New("at least one template entry is required")
)

// DayOfWeek follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
type DayOfWeek int

func NewDayOfWeek(d int) (DayOfWeek, error) {
	if d < 0 || d > 6 {
		return 0, ErrInvalidDayOfWeek
	}
	return DayOfWeek(d), nil
}

func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return DayOfWeek(date.Weekday())
}

func (d DayOfWeek) Int() int {
	return int(d)
}

// WeeklySlot is one template entry. The (court, day, start, end) tuple is
// its natural key; upserts match on it.
type WeeklySlot struct {
	id          uuid.UUID
	courtID     uuid.UUID
	day         DayOfWeek
	interval    booking.Interval
	available   bool
	maintenance bool
}

func NewWeeklySlot(courtID uuid.UUID, day DayOfWeek, iv booking.Interval, available, maintenance bool) WeeklySlot {
	return WeeklySlot{
		id:          uuid.New(),
		courtID:     courtID,
		day:         day,
		interval:    iv,
		available:   available,
		maintenance: maintenance,
	}
}

func ReconstructWeeklySlot(id, courtID uuid.UUID, day DayOfWeek, iv booking.Interval, available, maintenance bool) WeeklySlot {
	return WeeklySlot{
		id:          id,
		courtID:     courtID,
		day:         day,
		interval:    iv,
		available:   available,
		maintenance: maintenance,
	}
}

func (w WeeklySlot) ID() uuid.UUID              { return w.id }
func (w WeeklySlot) CourtID() uuid.UUID         { return w.courtID }
func (w WeeklySlot) Day() DayOfWeek             { return w.day }
func (w WeeklySlot) Interval() booking.Interval { return w.interval }
func (w WeeklySlot) Available() bool            { return w.available }
func (w WeeklySlot) Maintenance() bool          { return w.maintenance }

// Bookable entries are the only ones the availability projection surfaces.
func (w WeeklySlot) Bookable() bool {
	return w.available && !w.maintenance
}

// ValidateTemplate rejects a batch whose intervals overlap within any single
// day. The store does not enforce this; author input is validated at write time.
func ValidateTemplate(entries []WeeklySlot) error {
	if len(entries) == 0 {
		return ErrNoTemplateEntries
	}
	byDay := make(map[DayOfWeek][]booking.Interval)
	for _, e := range entries {
		for _, prev := range byDay[e.day] {
			if e.interval.Overlaps(prev) {
				return ErrTemplateOverlap
			}
		}
		byDay[e.day] = append(byDay[e.day], e.interval)
	}
	return nil
}

// DefaultGrid is the hourly 06:00-22:00 template owners start from.
func DefaultGrid(courtID uuid.UUID, day DayOfWeek) []WeeklySlot {
	slots := make([]WeeklySlot, 0, 16)
	for hour := 6; hour < 22; hour++ {
		start, _ := booking.NewTimeOfDay(hour, 0)
		end, _ := booking.NewTimeOfDay(hour+1, 0)
		iv, _ := booking.NewInterval(start, end)
		slots = append(slots, NewWeeklySlot(courtID, day, iv, true, false))
	}
	return slots
}
