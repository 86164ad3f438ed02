package response

import (
	"time"

	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingSlotResponse struct {
	ID          uuid.UUID `json:"id"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	DurationMin int       `json:"durationMin"`
	AmountCents int64     `json:"amountCents"`
}

type BookingResponse struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"userId"`
	CourtID       uuid.UUID             `json:"courtId"`
	CourtName     string                `json:"courtName"`
	VenueName     string                `json:"venueName"`
	Date          string                `json:"date"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"paymentStatus"`
	TotalCents    int64                 `json:"totalCents"`
	Notes         *string               `json:"notes,omitempty"`
	Slots         []BookingSlotResponse `json:"slots"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"courtId"`
	CourtName  string    `json:"courtName"`
	VenueName  string    `json:"venueName"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	SlotCount  int       `json:"slotCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

const dateLayout = "2006-01-02"

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	slots := make([]BookingSlotResponse, 0, len(rm.Slots))
	for _, s := range rm.Slots {
		slots = append(slots, BookingSlotResponse{
			ID:          s.ID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			DurationMin: s.DurationMin,
			AmountCents: s.AmountCents,
		})
	}
	return &BookingResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		CourtID:       rm.CourtID,
		CourtName:     rm.CourtName,
		VenueName:     rm.VenueName,
		Date:          rm.Date.Format(dateLayout),
		Status:        rm.Status,
		PaymentStatus: rm.PaymentStatus,
		TotalCents:    rm.TotalCents,
		Notes:         rm.Notes,
		Slots:         slots,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		CourtID:    rm.CourtID,
		CourtName:  rm.CourtName,
		VenueName:  rm.VenueName,
		Date:       rm.Date.Format(dateLayout),
		Status:     rm.Status,
		TotalCents: rm.TotalCents,
		SlotCount:  rm.SlotCount,
		CreatedAt:  rm.CreatedAt,
	}
}
