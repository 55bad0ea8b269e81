package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yurykabanov/snapaudit/pkg/domain"
)

// Printer renders audit results as a plain text table for the invoking
// terminal.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w: w,
	}
}

func (p *Printer) Print(result domain.AuditResult) error {
	tw := tabwriter.NewWriter(p.w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "VM\tSNAPSHOT\tSIZE_GB\tAGE_DAYS\tSIZE\tRETENTION")

	for _, verdict := range result.Verdicts {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%s\t%s\n",
			verdict.VMName, verdict.SnapshotName,
			verdict.SizeGB, verdict.AgeDays,
			passFail(verdict.SizePassed), passFail(verdict.RetentionPassed),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(p.w, "\n%d snapshots checked: %d compliant, %d non-compliant\n",
		len(result.Verdicts), result.CompliantCount(), result.NonCompliantCount())
	if err != nil {
		return err
	}

	for _, vmErr := range result.VMErrors {
		if _, err := fmt.Fprintf(p.w, "WARN: %s: %v\n", vmErr.VMName, vmErr.Err); err != nil {
			return err
		}
	}

	return nil
}

func passFail(passed bool) string {
	if passed {
		return "PASS"
	}

	return "FAIL"
}
