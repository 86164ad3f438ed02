package repository

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeExclusionViolation  = "23P01"
)

// kindFromPgErr classifies constraint violations; the exclusion constraint
// on active booking slots is the store-level double-booking guard.
func kindFromPgErr(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}
	switch pgErr.Code {
	case pgErrCodeExclusionViolation:
		return infra.KindConflict
	case pgErrCodeUniqueViolation:
		return infra.KindDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return infra.KindForeignKeyViolated
	default:
		return infra.KindDBFailure
	}
}

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const insertBookingSQL = `
INSERT INTO bookings (id, user_id, court_id, booking_date, total_cents, status, payment_status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertBookingSlotSQL = `
INSERT INTO booking_slots (id, booking_id, court_id, booking_date, start_time, end_time, duration_min, amount_cents, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	var notes pgtype.Text
	if !b.Notes().IsEmpty() {
		notes = pgconv.StringToPgtype(b.Notes().String())
	}

	_, err := dbtx.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.UserID(),
		b.CourtID(),
		pgconv.DateToPgtype(b.Date()),
		b.Total().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		notes,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err, kindFromPgErr(err))
	}

	for _, slot := range b.Slots() {
		_, err = dbtx.Exec(ctx, insertBookingSlotSQL,
			slot.ID(),
			b.ID(),
			b.CourtID(),
			pgconv.DateToPgtype(b.Date()),
			pgconv.TimeOfDayToPgtype(slot.Interval().Start()),
			pgconv.TimeOfDayToPgtype(slot.Interval().End()),
			slot.DurationMinutes(),
			slot.Amount().Cents(),
			b.IsActive(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert booking slot", err, kindFromPgErr(err))
		}
	}

	return nil
}

// Half-open overlap: [a,b) and [c,d) clash iff a < d AND c < b, so touching
// endpoints never conflict. Cancelled bookings have active=false slots and
// drop out here.
const hasConflictSQL = `
SELECT EXISTS (
    SELECT 1
    FROM booking_slots
    WHERE court_id = $1
      AND booking_date = $2
      AND active
      AND start_time < $4
      AND end_time > $3
)`

func (r *BookingRepository) HasConflict(ctx context.Context, dbtx db.DBTX, courtID uuid.UUID, date time.Time, iv booking.Interval) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, hasConflictSQL,
		courtID,
		pgconv.DateToPgtype(date),
		pgconv.TimeOfDayToPgtype(iv.Start()),
		pgconv.TimeOfDayToPgtype(iv.End()),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking conflict", err)
	}
	return exists, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, payment_status = $3, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String(), b.PaymentStatus().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const deactivateSlotsSQL = `
UPDATE booking_slots SET active = false WHERE booking_id = $1`

func (r *BookingRepository) DeactivateSlots(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, deactivateSlotsSQL, bookingID); err != nil {
		return infra.WrapRepoErr("failed to deactivate booking slots", err)
	}
	return nil
}

const completeFinishedSQL = `
UPDATE bookings b
SET status = 'completed', updated_at = now()
WHERE b.status = 'confirmed'
  AND NOT EXISTS (
      SELECT 1
      FROM booking_slots s
      WHERE s.booking_id = b.id
        AND (s.booking_date + s.end_time) > $1
  )`

func (r *BookingRepository) CompleteFinished(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, completeFinishedSQL, pgtype.Timestamp{Time: now, Valid: true})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete finished bookings", err)
	}
	return tag.RowsAffected(), nil
}
