package domain

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/snapaudit/pkg/appcontext"
)

// Remediator deletes snapshots whose verdict failed either test. It is
// disabled unless explicitly enabled in configuration; otherwise the audit
// stays report-only.
type Remediator struct {
	logger logrus.FieldLogger

	inventory Inventory
	enabled   bool
}

func NewRemediator(logger logrus.FieldLogger, inventory Inventory, enabled bool) *Remediator {
	return &Remediator{
		logger: logger,

		inventory: inventory,
		enabled:   enabled,
	}
}

// Remediate issues one deletion request per non-compliant verdict and
// returns the number of deletions attempted. Deletion requests are
// fire-and-forget; a failing request (snapshot already gone, permission
// denied) is logged and does not abort the pass.
func (r *Remediator) Remediate(ctx context.Context, verdicts []Verdict) int {
	if !r.enabled {
		return 0
	}

	attempted := 0

	for _, verdict := range verdicts {
		if verdict.Compliant() {
			continue
		}

		itemCtx := appcontext.WithSnapshot(appcontext.WithVirtualMachine(ctx, verdict.VMName), verdict.SnapshotName)
		logger := appcontext.LoggerFromContext(r.logger, itemCtx)

		logger.Info("Deleting non-compliant snapshot")
		attempted++

		err := r.inventory.DeleteSnapshot(itemCtx, verdict.VMName, verdict.SnapshotName)
		if err != nil {
			logger.WithError(err).Error("Unable to delete snapshot")
		}
	}

	return attempted
}
