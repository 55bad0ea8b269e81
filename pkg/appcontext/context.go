package appcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextId int

const (
	auditIdKeyId contextId = iota
	vmNameKeyId
	snapshotNameKeyId
	requestIdKeyId
)

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKeyId, requestId)
}

func WithAuditId(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, auditIdKeyId, id)
}

func WithVirtualMachine(ctx context.Context, vmName string) context.Context {
	return context.WithValue(ctx, vmNameKeyId, vmName)
}

func WithSnapshot(ctx context.Context, snapshotName string) context.Context {
	return context.WithValue(ctx, snapshotNameKeyId, snapshotName)
}

func LoggerFromContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}

	result := logger

	if ctxAuditId, ok := ctx.Value(auditIdKeyId).(int64); ok && ctxAuditId != 0 {
		result = result.WithField("audit_id", ctxAuditId)
	}

	if ctxVmName, ok := ctx.Value(vmNameKeyId).(string); ok && ctxVmName != "" {
		result = result.WithField("vm_name", ctxVmName)
	}

	if ctxSnapshotName, ok := ctx.Value(snapshotNameKeyId).(string); ok && ctxSnapshotName != "" {
		result = result.WithField("snapshot_name", ctxSnapshotName)
	}

	if ctxRequestId, ok := ctx.Value(requestIdKeyId).(string); ok && ctxRequestId != "" {
		result = result.WithField("request_id", ctxRequestId)
	}

	return result
}
