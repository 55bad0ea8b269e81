package domain

import "time"

const hoursPerDay = 24

// AgeDays returns the number of whole days elapsed between createdAt and
// now. Fractional days truncate toward zero, so a snapshot taken at the
// evaluation instant has an age of zero days.
func AgeDays(createdAt, now time.Time) int {
	return int(now.Sub(createdAt).Hours() / hoursPerDay)
}

// Evaluate checks a single snapshot record against the policy. It is a pure
// function of its three arguments: the size test fails when the snapshot is
// strictly larger than the threshold, the retention test fails when the
// snapshot is strictly older than the permitted number of days.
func Evaluate(record SnapshotRecord, policy SnapshotPolicy, now time.Time) Verdict {
	age := AgeDays(record.CreatedAt, now)

	return Verdict{
		VMName:          record.VMName,
		SnapshotName:    record.SnapshotName,
		SizeGB:          record.SizeGB,
		AgeDays:         age,
		SizePassed:      record.SizeGB <= policy.MaxSizeGB,
		RetentionPassed: age <= policy.RetentionDays,
	}
}

// Report evaluates every record against the policy, producing one verdict
// per record in input order. It never deduplicates and leaves summary
// statistics to the caller.
func Report(records []SnapshotRecord, policy SnapshotPolicy, now time.Time) []Verdict {
	verdicts := make([]Verdict, 0, len(records))

	for _, record := range records {
		verdicts = append(verdicts, Evaluate(record, policy, now))
	}

	return verdicts
}
