package domain

// Verdict is the outcome of checking one snapshot against the policy.
// Exactly one verdict is produced per evaluated record; it carries the
// measured values alongside the pass/fail flags so callers can present
// them without re-querying the platform.
type Verdict struct {
	VMName          string
	SnapshotName    string
	SizeGB          float64
	AgeDays         int
	SizePassed      bool
	RetentionPassed bool
}

func (v Verdict) Compliant() bool {
	return v.SizePassed && v.RetentionPassed
}
