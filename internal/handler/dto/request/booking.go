package request

import (
	"strings"
	"time"

	"courtside/internal/domain/booking"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type SlotRange struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (s SlotRange) ToDomain() (booking.Interval, error) {
	return booking.ParseInterval(s.StartTime, s.EndTime)
}

type CreateBookingRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	Notes     *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

func (r CreateBookingRequest) Intervals() ([]booking.Interval, error) {
	iv, err := booking.ParseInterval(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}
	return []booking.Interval{iv}, nil
}

func (r CreateBookingRequest) GetNotes() booking.Notes {
	return notesFromPtr(r.Notes)
}

type CreateBulkBookingRequest struct {
	CourtID uuid.UUID   `json:"court_id" binding:"required"`
	Date    string      `json:"date" binding:"required"`
	Slots   []SlotRange `json:"slots" binding:"required,min=1,dive"`
	Notes   *string     `json:"notes,omitempty"`
}

func (r CreateBulkBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

func (r CreateBulkBookingRequest) Intervals() ([]booking.Interval, error) {
	intervals := make([]booking.Interval, 0, len(r.Slots))
	for _, s := range r.Slots {
		iv, err := s.ToDomain()
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func (r CreateBulkBookingRequest) GetNotes() booking.Notes {
	return notesFromPtr(r.Notes)
}

func notesFromPtr(s *string) booking.Notes {
	if s == nil {
		return booking.NewNotes("")
	}
	return booking.NewNotes(strings.TrimSpace(*s))
}
