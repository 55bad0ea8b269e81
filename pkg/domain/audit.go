package domain

import "time"

// VMError records a per-VM enumeration failure. One failing VM never aborts
// the audit of the remaining inventory; its error is carried in the result
// instead.
type VMError struct {
	VMName string
	Err    error
}

// AuditResult is the outcome of a single audit run over the whole inventory.
type AuditResult struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Verdicts []Verdict
	VMErrors []VMError

	DeletionsAttempted int
}

func (r *AuditResult) CompliantCount() int {
	count := 0

	for _, verdict := range r.Verdicts {
		if verdict.Compliant() {
			count++
		}
	}

	return count
}

func (r *AuditResult) NonCompliantCount() int {
	return len(r.Verdicts) - r.CompliantCount()
}
