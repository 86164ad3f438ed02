package readstore

import (
	"context"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"
	"courtside/internal/usecase/queries"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT b.id, b.user_id, b.court_id, c.name, v.name, b.booking_date,
       b.status, b.payment_status, b.total_cents, b.notes, b.created_at, b.updated_at
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN venues v ON v.id = c.venue_id
WHERE b.id = $1`

const findBookingSlotsSQL = `
SELECT id, start_time, end_time, amount_cents
FROM booking_slots
WHERE booking_id = $1
ORDER BY start_time`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view  queries.BookingView
		date  pgtype.Date
		notes pgtype.Text
	)
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID,
		&view.UserID,
		&view.CourtID,
		&view.CourtName,
		&view.VenueName,
		&date,
		&view.Status,
		&view.PaymentStatus,
		&view.TotalCents,
		&notes,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	view.Date = pgconv.DateFromPgtype(date)
	view.Notes = pgconv.StringPtrFromPgtype(notes)

	rows, err := r.db.Query(ctx, findBookingSlotsSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slot       queries.BookingSlotView
			start, end pgtype.Time
		)
		if err := rows.Scan(&slot.ID, &start, &end, &slot.AmountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking slot", err)
		}
		startTOD := pgconv.TimeOfDayFromPgtype(start)
		endTOD := pgconv.TimeOfDayFromPgtype(end)
		slot.StartTime = startTOD.String()
		slot.EndTime = endTOD.String()
		slot.DurationMin = endTOD.Minutes() - startTOD.Minutes()
		view.Slots = append(view.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking slots", err)
	}
	return &view, nil
}

const listBookingsByUserSQL = `
SELECT b.id, b.court_id, c.name, v.name, b.booking_date, b.status, b.total_cents,
       (SELECT count(*) FROM booking_slots s WHERE s.booking_id = b.id),
       b.created_at
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN venues v ON v.id = c.venue_id
WHERE b.user_id = $1
ORDER BY b.booking_date DESC, b.created_at DESC`

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item queries.BookingListItem
			date pgtype.Date
		)
		if err := rows.Scan(
			&item.ID,
			&item.CourtID,
			&item.CourtName,
			&item.VenueName,
			&date,
			&item.Status,
			&item.TotalCents,
			&item.SlotCount,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = pgconv.DateFromPgtype(date)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

const activeIntervalsSQL = `
SELECT start_time, end_time
FROM booking_slots
WHERE court_id = $1 AND booking_date = $2 AND active
ORDER BY start_time`

// ActiveIntervals feeds the availability projection with everything that
// currently blocks a court on the given date.
func (r *BookingReadStore) ActiveIntervals(ctx context.Context, courtID uuid.UUID, date time.Time) ([]booking.Interval, error) {
	rows, err := r.db.Query(ctx, activeIntervalsSQL, courtID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load active intervals", err)
	}
	defer rows.Close()

	var result []booking.Interval
	for rows.Next() {
		var start, end pgtype.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active interval", err)
		}
		iv, err := booking.NewInterval(pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end))
		if err != nil {
			return nil, infra.WrapRepoErr("stored interval is invalid", err)
		}
		result = append(result, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active intervals", err)
	}
	return result, nil
}

const bookingSnapshotSQL = `
SELECT b.id, b.user_id, b.court_id, b.booking_date, b.status, b.payment_status,
       b.total_cents, b.notes, b.created_at, b.updated_at
FROM bookings b
WHERE b.id = $1`

// Snapshot serves the write side; slots come back as domain intervals so the
// aggregate can be reconstructed.
func (r *BookingReadStore) Snapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap  shared.BookingSnapshot
		date  pgtype.Date
		notes pgtype.Text
	)
	err := dbtx.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID,
		&snap.UserID,
		&snap.CourtID,
		&date,
		&snap.Status,
		&snap.PaymentStatus,
		&snap.TotalCents,
		&notes,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	snap.Date = pgconv.DateFromPgtype(date)
	snap.Notes = pgconv.StringPtrFromPgtype(notes)

	rows, err := dbtx.Query(ctx, findBookingSlotsSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slot       shared.SlotSnapshot
			start, end pgtype.Time
		)
		if err := rows.Scan(&slot.ID, &start, &end, &slot.AmountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking slot", err)
		}
		iv, err := booking.NewInterval(pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end))
		if err != nil {
			return nil, infra.WrapRepoErr("stored interval is invalid", err)
		}
		slot.Interval = iv
		snap.Slots = append(snap.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking slots", err)
	}
	return &snap, nil
}
