package domain

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/snapaudit/pkg/appcontext"
)

// Snapshot auditor is the core of snapaudit. It enumerates the virtual
// machine inventory, evaluates every snapshot against the configured
// policy and hands the verdicts to the remediator and the reporter.
type Auditor struct {
	logger logrus.FieldLogger

	policy   SnapshotPolicy
	cronSpec string

	inventory  Inventory
	remediator snapshotRemediator
	reporter   auditReporter

	cron cron

	now func() time.Time

	pending chan time.Time
	lastId  int64

	mu   sync.RWMutex
	last *AuditResult
}

// Inventory is the narrow view of the virtualization platform the auditor
// consumes. DeleteSnapshot waits only until the platform accepts the
// request, not for the deletion itself.
type Inventory interface {
	ListVirtualMachines(ctx context.Context) ([]string, error)
	ListSnapshots(ctx context.Context, vmName string) ([]SnapshotRecord, error)
	DeleteSnapshot(ctx context.Context, vmName, snapshotName string) error
}

type snapshotRemediator interface {
	Remediate(ctx context.Context, verdicts []Verdict) int
}

type auditReporter interface {
	Print(result AuditResult) error
}

type cron interface {
	AddFunc(spec string, cmd func()) error
	Start()
}

func NewAuditor(
	logger logrus.FieldLogger,
	policy SnapshotPolicy,
	cronSpec string,
	inventory Inventory,
	remediator snapshotRemediator,
	reporter auditReporter,
	cron cron,
) *Auditor {
	return &Auditor{
		logger: logger,

		policy:   policy,
		cronSpec: cronSpec,

		inventory:  inventory,
		remediator: remediator,
		reporter:   reporter,

		cron: cron,

		now: time.Now,

		pending: make(chan time.Time, 1),
	}
}

// RunOnce performs a single audit over the whole inventory: enumerate VMs,
// extract snapshot records, evaluate them against the policy in input order
// and remediate non-compliant snapshots if remediation is enabled.
//
// An inventory enumeration failure is fatal for the run. A failing snapshot
// query for a single VM is not: the error is recorded in the result and the
// remaining VMs are still audited.
func (a *Auditor) RunOnce(ctx context.Context) (AuditResult, error) {
	logger := appcontext.LoggerFromContext(a.logger, ctx)

	result := AuditResult{StartedAt: a.now()}

	vms, err := a.inventory.ListVirtualMachines(ctx)
	if err != nil {
		return result, errors.Wrap(err, "unable to enumerate virtual machines")
	}

	logger.WithField("total_vms", len(vms)).Info("Enumerated virtual machines")

	records := a.collectRecords(ctx, vms, &result)

	result.Verdicts = Report(records, a.policy, a.now())

	result.DeletionsAttempted = a.remediator.Remediate(ctx, result.Verdicts)

	result.FinishedAt = a.now()

	logger.WithFields(logrus.Fields{
		"total_snapshots": len(result.Verdicts),
		"non_compliant":   result.NonCompliantCount(),
		"failed_vms":      len(result.VMErrors),
	}).Info("Audit finished")

	a.mu.Lock()
	a.last = &result
	a.mu.Unlock()

	if err := a.reporter.Print(result); err != nil {
		logger.WithError(err).Error("Unable to print audit report")
	}

	return result, nil
}

func (a *Auditor) collectRecords(ctx context.Context, vms []string, result *AuditResult) []SnapshotRecord {
	var records []SnapshotRecord

	for _, vmName := range vms {
		vmCtx := appcontext.WithVirtualMachine(ctx, vmName)

		// A VM without snapshots contributes zero records, which is not
		// an error.
		snapshots, err := a.inventory.ListSnapshots(vmCtx, vmName)
		if err != nil {
			appcontext.LoggerFromContext(a.logger, vmCtx).WithError(err).Error("Unable to query snapshots")
			result.VMErrors = append(result.VMErrors, VMError{VMName: vmName, Err: err})
			continue
		}

		records = append(records, snapshots...)
	}

	return records
}

// Run schedules periodic audits using the configured cron spec and handles
// them sequentially. A tick arriving while an audit is still in progress is
// skipped with a warning rather than queued up.
func (a *Auditor) Run() {
	err := a.cron.AddFunc(a.cronSpec, a.dispatch)
	if err != nil {
		a.logger.WithField("spec", a.cronSpec).Fatalf("Invalid cron spec: '%s'", a.cronSpec)
	}

	a.logger.Debug("Starting cron")
	a.cron.Start()

	for range a.pending {
		a.lastId++
		ctx := appcontext.WithAuditId(context.Background(), a.lastId)

		if _, err := a.RunOnce(ctx); err != nil {
			appcontext.LoggerFromContext(a.logger, ctx).WithError(err).Error("Audit failed")
		}
	}
}

func (a *Auditor) dispatch() {
	t := a.now()

	fields := logrus.Fields{"scheduled_at": t}

	select {
	case a.pending <- t:
		a.logger.WithFields(fields).Info("Dispatched new audit")
	default:
		a.logger.WithFields(fields).Warn("Previous audit is still running, skipping")
	}
}

// LastResult returns the most recently finished audit, if any.
func (a *Auditor) LastResult() (AuditResult, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.last == nil {
		return AuditResult{}, false
	}

	return *a.last, true
}
