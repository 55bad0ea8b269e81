package vspherefx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(ConnectionConfigProvider),
	fx.Provide(VsphereClient),
	fx.Invoke(CloseVsphereClient),
)
