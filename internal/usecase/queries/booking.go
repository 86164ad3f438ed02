package queries

import (
	"context"

	"courtside/internal/domain/user"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotOwned = errs.New("booking belongs to another user")

type BookingQueries interface {
	// GetByID enforces ownership: members see their own bookings, admins see
	// everything.
	GetByID(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses ownership for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actor && role != user.RoleAdmin {
		return nil, ErrBookingNotOwned
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.repo.ListByUser(ctx, userID)
}
