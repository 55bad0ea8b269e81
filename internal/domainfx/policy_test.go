package domainfx

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadPolicy(t *testing.T) {
	v := viper.New()
	v.Set("retention", 7)
	v.Set("size", 10.5)

	policy, err := LoadPolicy(v)

	assert.Nil(t, err)
	assert.Equal(t, 7, policy.RetentionDays)
	assert.Equal(t, 10.5, policy.MaxSizeGB)
}

func TestLoadPolicy_NotConfigured(t *testing.T) {
	v := viper.New()

	// The flag defaults left in place when nobody configured a policy.
	v.Set("retention", -1)
	v.Set("size", -1.0)

	_, err := LoadPolicy(v)

	assert.NotNil(t, err)
}

func TestLoadPolicy_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("retention", -3)
	v.Set("size", 10.0)

	_, err := LoadPolicy(v)

	assert.NotNil(t, err)
}
