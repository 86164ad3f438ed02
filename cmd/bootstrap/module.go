package bootstrap

import (
	"courtside/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	SchedulerModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
