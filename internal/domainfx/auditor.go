package domainfx

import (
	"context"
	"os"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vmware/govmomi"
	"go.uber.org/fx"

	"github.com/yurykabanov/snapaudit/pkg/domain"
	"github.com/yurykabanov/snapaudit/pkg/report"
	"github.com/yurykabanov/snapaudit/pkg/vsphere"
)

const (
	ConfigAuditCronSpec    = "audit.cron_spec"
	ConfigAuditRunOnce     = "once"
	ConfigRemediateEnabled = "remediate"
)

const defaultCronSpec = "@daily"

func NewCron() *cron.Cron {
	return cron.New()
}

func Inventory(logger *logrus.Logger, client *govmomi.Client) domain.Inventory {
	return vsphere.NewInventory(logger, client)
}

func Remediator(v *viper.Viper, logger *logrus.Logger, inventory domain.Inventory) *domain.Remediator {
	return domain.NewRemediator(logger, inventory, v.GetBool(ConfigRemediateEnabled))
}

func Reporter() *report.Printer {
	return report.NewPrinter(os.Stdout)
}

func Auditor(
	v *viper.Viper,
	logger *logrus.Logger,
	policy domain.SnapshotPolicy,
	inventory domain.Inventory,
	remediator *domain.Remediator,
	reporter *report.Printer,
	cron *cron.Cron,
) *domain.Auditor {
	cronSpec := v.GetString(ConfigAuditCronSpec)
	if cronSpec == "" {
		cronSpec = defaultCronSpec
	}

	return domain.NewAuditor(logger, policy, cronSpec, inventory, remediator, reporter, cron)
}

func RunAuditor(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	v *viper.Viper,
	logger *logrus.Logger,
	auditor *domain.Auditor,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if v.GetBool(ConfigAuditRunOnce) {
				go runOnceAndShutdown(shutdowner, logger, auditor)
				return nil
			}

			go auditor.Run()
			return nil
		},
	})
}

func runOnceAndShutdown(shutdowner fx.Shutdowner, logger *logrus.Logger, auditor *domain.Auditor) {
	if _, err := auditor.RunOnce(context.Background()); err != nil {
		logger.WithError(err).Error("Audit failed")
	}

	if err := shutdowner.Shutdown(); err != nil {
		logger.WithError(err).Error("Unable to shut down")
	}
}
