package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const (
		key          = "STAKING_ENGINE_TEST_KEY"
		defaultValue = "7.0.5"
	)

	t.Run("unset key falls back", func(t *testing.T) {
		assert.Equal(t, defaultValue, Getenv("STAKING_ENGINE_MISSING_KEY", defaultValue))
	})
	t.Run("empty value wins over default", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Empty(t, Getenv(key, defaultValue))
	})
	t.Run("set value", func(t *testing.T) {
		t.Setenv(key, "8.0")
		assert.Equal(t, "8.0", Getenv(key, defaultValue))
	})
}
