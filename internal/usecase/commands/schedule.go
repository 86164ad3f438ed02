package commands

import (
	"context"
	"errors"

	"courtside/internal/domain/schedule"
	"courtside/internal/domain/user"
	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/infra"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotCourtOwner      = errs.New("court belongs to another owner")
	ErrInvalidTemplate    = errs.New("invalid weekly template")
	ErrTemplateConflict   = errs.New("weekly template intervals overlap")
	ErrScheduleValidation = errs.New("schedule validation error")
)

type ScheduleCommands interface {
	// UpsertWeeklySlots replaces flags on matching template entries and
	// inserts new ones. The whole batch is validated for overlaps first;
	// an invalid batch writes nothing.
	UpsertWeeklySlots(ctx context.Context, courtID uuid.UUID, req reqdto.UpsertWeeklySlotsRequest, actorID uuid.UUID, role user.Role) error
}

type scheduleCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleCommands(uow shared.UnitOfWork) ScheduleCommands {
	return &scheduleCommandsImpl{uow: uow}
}

func (c *scheduleCommandsImpl) UpsertWeeklySlots(
	ctx context.Context,
	courtID uuid.UUID,
	req reqdto.UpsertWeeklySlotsRequest,
	actorID uuid.UUID,
	role user.Role,
) error {
	court, err := c.uow.CommandReads().CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCourtNotFound
		}
		return errs.Mark(err, ErrDatabaseOperation)
	}
	if role != user.RoleAdmin && court.Venue.OwnerID() != actorID {
		return ErrNotCourtOwner
	}

	entries, err := req.ToDomain(courtID)
	if err != nil {
		if errors.Is(err, schedule.ErrTemplateOverlap) {
			return ErrTemplateConflict
		}
		return errs.Mark(err, ErrInvalidTemplate)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Schedules().Upsert(ctx, tx.DB(), entries); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}
