package domainfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(LoadPolicy),
	fx.Provide(NewCron),
	fx.Provide(Inventory),
	fx.Provide(Remediator),
	fx.Provide(Reporter),
	fx.Provide(Auditor),
	fx.Invoke(RunAuditor),
)
