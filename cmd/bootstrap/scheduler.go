package bootstrap

import (
	"context"

	"courtside/internal/pkg/clock"
	"courtside/internal/scheduler"
	"courtside/internal/usecase/shared"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		func() scheduler.Sender { return scheduler.LogSender{} },
		NewScheduler,
	),
	fx.Invoke(func(*scheduler.Service) {}),
)

func NewScheduler(lc fx.Lifecycle, uow shared.UnitOfWork, sender scheduler.Sender, clk clock.Clock) (*scheduler.Service, error) {
	svc, err := scheduler.New(uow, sender, clk)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return svc.Start()
		},
		OnStop: func(_ context.Context) error {
			return svc.Stop()
		},
	})

	return svc, nil
}
