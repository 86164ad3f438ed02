package shared

import (
	"context"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/court"
	"courtside/internal/domain/schedule"
	"courtside/internal/domain/venue"
	"courtside/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-committed transaction for write operations, retried
	// on serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Schedules() ScheduleRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads returns minimal write-side snapshots so commands never depend
// on read-model types.
type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

// CourtSnapshot pairs a court with its owning venue, reconstructed as
// domain entities so command preconditions run the aggregate rules.
type CourtSnapshot struct {
	Court *court.Court
	Venue *venue.Venue
}

// Bookable mirrors the precondition of every customer-facing operation:
// active court inside an approved, active venue.
func (c *CourtSnapshot) Bookable() bool {
	return c.Court.IsActive() && c.Venue.PubliclyBookable()
}

type SlotSnapshot struct {
	ID          uuid.UUID
	Interval    booking.Interval
	AmountCents int64
}

type BookingSnapshot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CourtID       uuid.UUID
	Date          time.Time
	Status        string
	PaymentStatus string
	TotalCents    int64
	Notes         *string
	Slots         []SlotSnapshot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

type BookingRepository interface {
	// Create persists the booking header and one row per slot in the
	// caller's transaction.
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	// HasConflict applies the half-open overlap rule against active slots
	// for the same court and date.
	HasConflict(ctx context.Context, dbtx db.DBTX, courtID uuid.UUID, date time.Time, iv booking.Interval) (bool, error)
	// UpdateStatus writes status and payment status back from the aggregate.
	UpdateStatus(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	// DeactivateSlots removes a booking's slots from future conflict checks
	// while retaining the rows for audit.
	DeactivateSlots(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) error
	// CompleteFinished flips confirmed bookings whose last slot has passed.
	CompleteFinished(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
}

type ScheduleRepository interface {
	// Upsert matches entries on (court, day, start, end): inserts new rows,
	// toggles flags on existing ones. Entries are never hard-deleted.
	Upsert(ctx context.Context, dbtx db.DBTX, entries []schedule.WeeklySlot) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// MarkFailed requeues the job with a delay until maxAttempts is reached,
	// then parks it as failed.
	MarkFailed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, lastError string, maxAttempts int32) error
}
