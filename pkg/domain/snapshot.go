package domain

import "time"

// SnapshotRecord is a normalized view of a single virtual machine snapshot
// as reported by the platform. Immutable once extracted.
type SnapshotRecord struct {
	VMName       string
	SnapshotName string
	CreatedAt    time.Time
	SizeGB       float64
	SizeMB       float64
}
