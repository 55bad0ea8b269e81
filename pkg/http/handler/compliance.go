package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/snapaudit/pkg/appcontext"
	"github.com/yurykabanov/snapaudit/pkg/domain"
)

type AuditSource interface {
	LastResult() (domain.AuditResult, bool)
}

// ComplianceHandler exposes the latest audit result as JSON so the daemon
// can be scraped between scheduled runs.
type ComplianceHandler struct {
	logger logrus.FieldLogger
	source AuditSource
}

func NewComplianceHandler(logger logrus.FieldLogger, source AuditSource) *ComplianceHandler {
	return &ComplianceHandler{
		logger: logger,
		source: source,
	}
}

type complianceResponse struct {
	StartedAt          int64             `json:"started_at_mtime"`
	FinishedAt         int64             `json:"finished_at_mtime"`
	TotalSnapshots     int               `json:"total_snapshots"`
	Compliant          int               `json:"compliant"`
	NonCompliant       int               `json:"non_compliant"`
	FailedVMs          []string          `json:"failed_vms"`
	DeletionsAttempted int               `json:"deletions_attempted"`
	Verdicts           []verdictResponse `json:"verdicts"`
}

type verdictResponse struct {
	VMName          string  `json:"vm_name"`
	SnapshotName    string  `json:"snapshot_name"`
	SizeGB          float64 `json:"size_gb"`
	AgeDays         int     `json:"age_days"`
	SizePassed      bool    `json:"size_test_passed"`
	RetentionPassed bool    `json:"retention_test_passed"`
}

func (h *ComplianceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := appcontext.LoggerFromContext(h.logger, r.Context())

	result, ok := h.source.LastResult()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := complianceResponse{
		StartedAt:          result.StartedAt.UnixNano() / 1e6,
		FinishedAt:         result.FinishedAt.UnixNano() / 1e6,
		TotalSnapshots:     len(result.Verdicts),
		Compliant:          result.CompliantCount(),
		NonCompliant:       result.NonCompliantCount(),
		DeletionsAttempted: result.DeletionsAttempted,
	}

	for _, vmErr := range result.VMErrors {
		response.FailedVMs = append(response.FailedVMs, vmErr.VMName)
	}

	for _, verdict := range result.Verdicts {
		response.Verdicts = append(response.Verdicts, verdictResponse{
			VMName:          verdict.VMName,
			SnapshotName:    verdict.SnapshotName,
			SizeGB:          verdict.SizeGB,
			AgeDays:         verdict.AgeDays,
			SizePassed:      verdict.SizePassed,
			RetentionPassed: verdict.RetentionPassed,
		})
	}

	enc := json.NewEncoder(w)

	if err := enc.Encode(response); err != nil {
		logger.WithError(err).Error("Unable to encode response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}
