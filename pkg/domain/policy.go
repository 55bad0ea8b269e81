package domain

import "github.com/pkg/errors"

// SnapshotPolicy holds the two compliance thresholds every snapshot is
// checked against. Supplied once from configuration at process start.
type SnapshotPolicy struct {
	RetentionDays int
	MaxSizeGB     float64
}

func (p SnapshotPolicy) Validate() error {
	if p.RetentionDays < 0 {
		return errors.Errorf("retention must be non-negative, got %d", p.RetentionDays)
	}

	if p.MaxSizeGB < 0 {
		return errors.Errorf("size must be non-negative, got %f", p.MaxSizeGB)
	}

	return nil
}
