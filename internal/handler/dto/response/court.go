package response

import (
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type CourtResponse struct {
	ID                uuid.UUID `json:"id"`
	VenueID           uuid.UUID `json:"venueId"`
	VenueName         string    `json:"venueName"`
	Name              string    `json:"name"`
	Sport             string    `json:"sport"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	IsActive          bool      `json:"isActive"`
}

func FromCourtView(rm *queries.CourtView) *CourtResponse {
	return &CourtResponse{
		ID:                rm.ID,
		VenueID:           rm.VenueID,
		VenueName:         rm.VenueName,
		Name:              rm.Name,
		Sport:             rm.Sport,
		PricePerHourCents: rm.PricePerHourCents,
		IsActive:          rm.IsActive,
	}
}

type AvailabilitySlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Booked    bool   `json:"booked"`
}

type AvailabilityResponse struct {
	CourtID uuid.UUID                  `json:"courtId"`
	Date    string                     `json:"date"`
	Slots   []AvailabilitySlotResponse `json:"slots"`
}

func FromAvailability(courtID uuid.UUID, date string, slots []queries.AvailabilitySlot) *AvailabilityResponse {
	out := make([]AvailabilitySlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, AvailabilitySlotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Booked:    s.Booked,
		})
	}
	return &AvailabilityResponse{CourtID: courtID, Date: date, Slots: out}
}

type WeeklySlotResponse struct {
	ID          uuid.UUID `json:"id"`
	CourtID     uuid.UUID `json:"courtId"`
	DayOfWeek   int       `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Available   bool      `json:"isAvailable"`
	Maintenance bool      `json:"isMaintenance"`
}

func FromWeeklySlotView(rm *queries.WeeklySlotView) *WeeklySlotResponse {
	return &WeeklySlotResponse{
		ID:          rm.ID,
		CourtID:     rm.CourtID,
		DayOfWeek:   rm.DayOfWeek,
		StartTime:   rm.StartTime,
		EndTime:     rm.EndTime,
		Available:   rm.Available,
		Maintenance: rm.Maintenance,
	}
}
