package domainfx

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/yurykabanov/snapaudit/pkg/domain"
)

const (
	ConfigPolicyRetention = "retention"
	ConfigPolicySize      = "size"
)

// LoadPolicy reads the snapshot policy from configuration. A run without a
// valid policy must not start: snapshots are never allowed to pass silently
// just because nobody configured thresholds.
func LoadPolicy(v *viper.Viper) (domain.SnapshotPolicy, error) {
	policy := domain.SnapshotPolicy{
		RetentionDays: v.GetInt(ConfigPolicyRetention),
		MaxSizeGB:     v.GetFloat64(ConfigPolicySize),
	}

	if err := policy.Validate(); err != nil {
		return domain.SnapshotPolicy{}, errors.Wrap(err, "snapshot policy is missing or invalid")
	}

	return policy, nil
}
