package config

import (
	"errors"
	"time"
)

const (
	defaultAccrualInterval    = 1 * time.Hour
	defaultAccrualChunkSize   = 500
	defaultAccrualConcurrency = 8
	defaultReconcileInterval  = 6 * time.Hour
	defaultStatsInterval      = 5 * time.Minute
)

type PollerConfig struct {
	// AccrualInterval is how often the in-process driver attempts the daily
	// accrual. Passes after the first one on a calendar day find nothing to do.
	AccrualInterval    time.Duration `mapstructure:"accrual-interval"`
	AccrualChunkSize   int64         `mapstructure:"accrual-chunk-size"`
	AccrualConcurrency int           `mapstructure:"accrual-concurrency"`
	ReconcileInterval  time.Duration `mapstructure:"reconcile-interval"`
	StatsInterval      time.Duration `mapstructure:"stats-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.AccrualInterval <= 0 {
		return errors.New("accrual-interval must be positive")
	}

	if cfg.AccrualChunkSize <= 0 {
		return errors.New("accrual-chunk-size must be positive")
	}

	if cfg.AccrualConcurrency <= 0 {
		cfg.AccrualConcurrency = defaultAccrualConcurrency
	}

	if cfg.ReconcileInterval <= 0 {
		return errors.New("reconcile-interval must be positive")
	}

	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = defaultStatsInterval
	}

	return nil
}
