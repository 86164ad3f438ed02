package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side). Times of day are "HH:MM" strings;
// the domain representation stays internal to the write side.

type CourtView struct {
	ID                uuid.UUID `json:"id"`
	VenueID           uuid.UUID `json:"venue_id"`
	VenueName         string    `json:"venue_name"`
	Name              string    `json:"name"`
	Sport             string    `json:"sport"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	IsActive          bool      `json:"is_active"`
}

type BookingSlotView struct {
	ID          uuid.UUID `json:"id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	AmountCents int64     `json:"amount_cents"`
}

type BookingView struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	CourtID       uuid.UUID         `json:"court_id"`
	CourtName     string            `json:"court_name"`
	VenueName     string            `json:"venue_name"`
	Date          time.Time         `json:"date"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	TotalCents    int64             `json:"total_cents"`
	Notes         *string           `json:"notes,omitempty"`
	Slots         []BookingSlotView `json:"slots"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	CourtName  string    `json:"court_name"`
	VenueName  string    `json:"venue_name"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	SlotCount  int       `json:"slot_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// AvailabilitySlot is one template interval for a concrete date, flagged
// when an active booking overlaps it.
type AvailabilitySlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Booked    bool   `json:"booked"`
}

type WeeklySlotView struct {
	ID          uuid.UUID `json:"id"`
	CourtID     uuid.UUID `json:"court_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Available   bool      `json:"is_available"`
	Maintenance bool      `json:"is_maintenance"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
