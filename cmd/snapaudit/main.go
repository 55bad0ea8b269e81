package main

import (
	"time"

	"go.uber.org/fx"

	"github.com/yurykabanov/snapaudit/internal/configfx"
	"github.com/yurykabanov/snapaudit/internal/domainfx"
	"github.com/yurykabanov/snapaudit/internal/loggerfx"
	"github.com/yurykabanov/snapaudit/internal/metricsfx"
	"github.com/yurykabanov/snapaudit/internal/vspherefx"
)

func main() {
	logger := loggerfx.Logger()

	app := fx.New(
		fx.StartTimeout(15*time.Second),
		fx.StopTimeout(15*time.Second),

		fx.Logger(logger),

		loggerfx.Module,
		configfx.Module,
		vspherefx.Module,
		metricsfx.Module,
		domainfx.Module,
	)

	app.Run()
}
