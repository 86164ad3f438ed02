package components

import (
	"courtside/internal/infra/db"
	"courtside/internal/infra/readstore"
	"courtside/internal/infra/uow"
	"courtside/internal/usecase"
	"courtside/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Court
		fx.Annotate(
			readstore.NewCourtReadStore,
			fx.As(new(queries.CourtViewRepo)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.ActiveIntervalRepo)),
		),
		// Schedule
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleViewRepo)),
			fx.As(new(queries.BookableIntervalRepo)),
		),
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(usecase.UserViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
