package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoIntervals       = errors.New("at least one interval is required")
	ErrIntraBatchClash   = errors.New("intervals within one request overlap each other")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrAlreadyCompleted  = errors.New("booking is already completed")
	ErrCancelTooLate     = errors.New("cancellation window has closed")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// CourtSpec is the slice of court state the aggregate needs for pricing.
type CourtSpec struct {
	ID                uuid.UUID
	PricePerHourCents int64
}

type Slot struct {
	id       uuid.UUID
	interval Interval
	amount   Money
}

func (s Slot) ID() uuid.UUID      { return s.id }
func (s Slot) Interval() Interval { return s.interval }
func (s Slot) Amount() Money      { return s.amount }
func (s Slot) DurationMinutes() int {
	return s.interval.DurationMinutes()
}

// Booking owns one or many slots sharing the same court and date.
type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	courtID       uuid.UUID
	date          time.Time
	slots         []Slot
	total         Money
	status        Status
	paymentStatus PaymentStatus
	notes         Notes
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking builds a confirmed, paid booking from validated intervals.
// The batch itself must be internally non-overlapping; conflicts against
// persisted bookings are the repository's concern.
func NewBooking(court CourtSpec, userID uuid.UUID, date time.Time, intervals []Interval, notes Notes) (*Booking, error) {
	if len(intervals) == 0 {
		return nil, ErrNoIntervals
	}
	for i, iv := range intervals {
		for _, prev := range intervals[:i] {
			if iv.Overlaps(prev) {
				return nil, ErrIntraBatchClash
			}
		}
	}

	slots := make([]Slot, 0, len(intervals))
	total := NewMoney(0)
	for _, iv := range intervals {
		amount := PriceFor(court.PricePerHourCents, iv)
		slots = append(slots, Slot{
			id:       uuid.New(),
			interval: iv,
			amount:   amount,
		})
		total = total.Add(amount)
	}

	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		courtID:       court.ID,
		date:          date,
		slots:         slots,
		total:         total,
		status:        StatusConfirmed,
		paymentStatus: PaymentPaid,
		notes:         notes,
	}, nil
}

func ReconstructBooking(
	id, userID, courtID uuid.UUID,
	date time.Time,
	slots []Slot,
	total Money,
	status Status,
	paymentStatus PaymentStatus,
	notes Notes,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		courtID:       courtID,
		date:          date,
		slots:         slots,
		total:         total,
		status:        status,
		paymentStatus: paymentStatus,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func ReconstructSlot(id uuid.UUID, iv Interval, amount Money) Slot {
	return Slot{id: id, interval: iv, amount: amount}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) CourtID() uuid.UUID           { return b.courtID }
func (b *Booking) Date() time.Time              { return b.date }
func (b *Booking) Slots() []Slot                { return b.slots }
func (b *Booking) Total() Money                 { return b.total }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Notes() Notes                 { return b.notes }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed || b.status == StatusPending
}

// StartsAt is the date anchored at the earliest slot start.
func (b *Booking) StartsAt() time.Time {
	earliest := b.slots[0].interval.Start()
	for _, s := range b.slots[1:] {
		if s.interval.Start() < earliest {
			earliest = s.interval.Start()
		}
	}
	return earliest.On(b.date)
}

// CanCancel checks the time-based gate only; status gates live in Cancel.
func (b *Booking) CanCancel(now time.Time, leadTime time.Duration) bool {
	return b.StartsAt().Sub(now) >= leadTime
}

// Cancel flips status to cancelled when policy allows. Slots are retained
// for audit; the caller deactivates them for conflict checks.
func (b *Booking) Cancel(now time.Time, leadTime time.Duration) error {
	switch b.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	if !b.CanCancel(now, leadTime) {
		return ErrCancelTooLate
	}
	b.status = StatusCancelled
	if b.paymentStatus == PaymentPaid {
		b.paymentStatus = PaymentRefunded
	}
	return nil
}

// Confirm moves a pending booking to confirmed once payment settles.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.paymentStatus = PaymentPaid
	return nil
}

// Complete marks a confirmed booking whose time has passed.
func (b *Booking) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	return nil
}
