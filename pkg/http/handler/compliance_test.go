package handler

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yurykabanov/snapaudit/pkg/domain"
)

type auditSourceStub struct {
	result domain.AuditResult
	ok     bool
}

func (s *auditSourceStub) LastResult() (domain.AuditResult, bool) {
	return s.result, s.ok
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = ioutil.Discard

	return logger
}

func TestComplianceHandler_NoAuditYet(t *testing.T) {
	h := NewComplianceHandler(discardLogger(), &auditSourceStub{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics/compliance", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestComplianceHandler_LastResult(t *testing.T) {
	startedAt, _ := time.Parse(time.RFC3339, "2019-03-01T12:00:00Z")

	source := &auditSourceStub{
		result: domain.AuditResult{
			StartedAt:  startedAt,
			FinishedAt: startedAt.Add(2 * time.Second),
			Verdicts: []domain.Verdict{
				{VMName: "web-01", SnapshotName: "ok", SizePassed: true, RetentionPassed: true},
				{VMName: "db-01", SnapshotName: "forgotten", SizeGB: 15, AgeDays: 10},
			},
			VMErrors:           []domain.VMError{{VMName: "broken-01"}},
			DeletionsAttempted: 1,
		},
		ok: true,
	}

	h := NewComplianceHandler(discardLogger(), source)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics/compliance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response complianceResponse
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, 2, response.TotalSnapshots)
	assert.Equal(t, 1, response.Compliant)
	assert.Equal(t, 1, response.NonCompliant)
	assert.Equal(t, []string{"broken-01"}, response.FailedVMs)
	assert.Equal(t, 1, response.DeletionsAttempted)
	assert.Len(t, response.Verdicts, 2)
	assert.Equal(t, "forgotten", response.Verdicts[1].SnapshotName)
	assert.False(t, response.Verdicts[1].SizePassed)
}
