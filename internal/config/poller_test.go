package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("all required fields set", func(t *testing.T) {
		cfg := &PollerConfig{
			AccrualInterval:    1 * time.Minute,
			AccrualChunkSize:   100,
			AccrualConcurrency: 2,
			ReconcileInterval:  2 * time.Minute,
			StatsInterval:      3 * time.Minute,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Minute, cfg.StatsInterval)
		assert.Equal(t, 2, cfg.AccrualConcurrency)
	})

	t.Run("optional fields not set - should use defaults", func(t *testing.T) {
		cfg := &PollerConfig{
			AccrualInterval:   1 * time.Minute,
			AccrualChunkSize:  100,
			ReconcileInterval: 2 * time.Minute,
			StatsInterval:     -1 * time.Minute, // negative
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultStatsInterval, cfg.StatsInterval)
		assert.Equal(t, defaultAccrualConcurrency, cfg.AccrualConcurrency)
	})

	t.Run("accrual interval not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			AccrualChunkSize:  100,
			ReconcileInterval: 2 * time.Minute,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accrual-interval must be positive")
	})

	t.Run("chunk size not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			AccrualInterval:   1 * time.Minute,
			ReconcileInterval: 2 * time.Minute,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accrual-chunk-size must be positive")
	})

	t.Run("reconcile interval not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			AccrualInterval:  1 * time.Minute,
			AccrualChunkSize: 100,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reconcile-interval must be positive")
	})
}
