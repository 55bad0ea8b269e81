package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/yurykabanov/snapaudit/pkg/domain"
)

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer

	result := domain.AuditResult{
		Verdicts: []domain.Verdict{
			{VMName: "web-01", SnapshotName: "pre-upgrade", SizeGB: 5, AgeDays: 3, SizePassed: true, RetentionPassed: true},
			{VMName: "db-01", SnapshotName: "forgotten", SizeGB: 15, AgeDays: 10, SizePassed: false, RetentionPassed: false},
		},
	}

	p := NewPrinter(&buf)

	err := p.Print(result)

	assert.Nil(t, err)

	out := buf.String()

	assert.Contains(t, out, "VM")
	assert.Contains(t, out, "web-01")
	assert.Contains(t, out, "pre-upgrade")
	assert.Contains(t, out, "db-01")
	assert.Contains(t, out, "2 snapshots checked: 1 compliant, 1 non-compliant")

	// Row order follows verdict order.
	assert.True(t, strings.Index(out, "web-01") < strings.Index(out, "db-01"))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[1], "PASS")
	assert.Contains(t, lines[2], "FAIL")
}

func TestPrinter_Print_VMErrors(t *testing.T) {
	var buf bytes.Buffer

	result := domain.AuditResult{
		VMErrors: []domain.VMError{
			{VMName: "broken-01", Err: errors.New("query failed")},
		},
	}

	p := NewPrinter(&buf)

	err := p.Print(result)

	assert.Nil(t, err)
	assert.Contains(t, buf.String(), "0 snapshots checked")
	assert.Contains(t, buf.String(), "WARN: broken-01: query failed")
}
