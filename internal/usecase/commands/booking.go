package commands

import (
	"context"
	"encoding/json"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/user"
	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/infra"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/queries"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound      = errs.New("court not found")
	ErrCourtNotBookable   = errs.New("court is not open for booking")
	ErrInvalidBookingDate = errs.New("invalid booking date")
	ErrBookingInPast      = errs.New("booking date is in the past")
	ErrInvalidTimeSlot    = errs.New("invalid time slot")
	ErrTooManySlots       = errs.New("too many slots in one request")
	ErrBookingConflict    = errs.New("requested time overlaps an existing booking")
	ErrBookingNotFound    = errs.New("booking not found")
	ErrBookingNotOwned    = errs.New("booking belongs to another user")
	ErrCancelTooLate      = errs.New("cancellation window has closed")
	ErrAlreadyCancelled   = errs.New("booking is already cancelled")
	ErrAlreadyCompleted   = errs.New("booking is already completed")
	ErrDomainValidation   = errs.New("domain validation error")
	ErrDatabaseOperation  = errs.New("database operation failed")
)

type BookingCommands interface {
	// Create books a single slot. It is the one-interval case of CreateBulk
	// and shares its validation and persistence path.
	Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	// CreateBulk books several slots on one court and date atomically:
	// if any slot conflicts, nothing is persisted.
	CreateBulk(ctx context.Context, req reqdto.CreateBulkBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	// Cancel applies the cancellation policy gate and releases the slots.
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	cfg            config.BookingConfig
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	cfg config.BookingConfig,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		cfg:            cfg,
		clock:          clk,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	date, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingDate)
	}
	intervals, err := req.Intervals()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}
	return c.create(ctx, req.CourtID, userID, date, intervals, req.GetNotes())
}

func (c *bookingCommandsImpl) CreateBulk(ctx context.Context, req reqdto.CreateBulkBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	date, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingDate)
	}
	intervals, err := req.Intervals()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}
	return c.create(ctx, req.CourtID, userID, date, intervals, req.GetNotes())
}

func (c *bookingCommandsImpl) create(
	ctx context.Context,
	courtID, userID uuid.UUID,
	date time.Time,
	intervals []booking.Interval,
	notes booking.Notes,
) (*queries.BookingView, error) {
	if len(intervals) > c.cfg.MaxBulkSlots {
		return nil, ErrTooManySlots
	}

	court, err := c.uow.CommandReads().CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !court.Bookable() {
		return nil, ErrCourtNotBookable
	}

	entity, err := booking.NewBooking(
		booking.CourtSpec{ID: court.Court.ID(), PricePerHourCents: court.Court.PricePerHourCents()},
		userID,
		date,
		intervals,
		notes,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if !entity.StartsAt().After(c.clock.Now()) {
		return nil, ErrBookingInPast
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Check-then-act is advisory only; the exclusion constraint on
		// booking_slots is what actually closes the race. The pre-check
		// exists to report the failing interval instead of a bare 409.
		for _, iv := range intervals {
			conflict, err := tx.Bookings().HasConflict(ctx, tx.DB(), courtID, date, iv)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperation)
			}
			if conflict {
				return errs.Mark(errs.New("interval "+iv.String()+" is taken"), ErrBookingConflict)
			}
		}

		if err := tx.Bookings().Create(ctx, tx.DB(), entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrBookingConflict)
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		return c.enqueueNotification(ctx, tx, "booking_confirmed", entity.ID())
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if snap.UserID != actorID && role != user.RoleAdmin {
			return ErrBookingNotOwned
		}

		entity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := entity.Cancel(c.clock.Now(), c.cfg.CancelLeadTime); err != nil {
			switch err {
			case booking.ErrAlreadyCancelled:
				return ErrAlreadyCancelled
			case booking.ErrAlreadyCompleted:
				return ErrAlreadyCompleted
			case booking.ErrCancelTooLate:
				return ErrCancelTooLate
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.Bookings().DeactivateSlots(ctx, tx.DB(), entity.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		return c.enqueueNotification(ctx, tx, "booking_cancelled", bookingID)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return view, nil
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	slots := make([]booking.Slot, 0, len(snap.Slots))
	for _, s := range snap.Slots {
		slots = append(slots, booking.ReconstructSlot(s.ID, s.Interval, booking.NewMoney(s.AmountCents)))
	}
	status, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := booking.NewPaymentStatus(snap.PaymentStatus)
	if err != nil {
		return nil, err
	}
	notes := booking.NewNotes("")
	if snap.Notes != nil {
		notes = booking.NewNotes(*snap.Notes)
	}
	return booking.ReconstructBooking(
		snap.ID, snap.UserID, snap.CourtID,
		snap.Date,
		slots,
		booking.NewMoney(snap.TotalCents),
		status,
		paymentStatus,
		notes,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	return nil
}
