package config

import (
	"errors"
	"time"
)

const (
	defaultMaxRetryTimes = 5
	defaultRetryInterval = 50 * time.Millisecond
)

// StakingConfig bounds the automatic retries of an operation that lost a
// race on a pool or position.
type StakingConfig struct {
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func DefaultStakingConfig() StakingConfig {
	return StakingConfig{
		MaxRetryTimes: defaultMaxRetryTimes,
		RetryInterval: defaultRetryInterval,
	}
}

func (cfg *StakingConfig) Validate() error {
	if cfg.MaxRetryTimes <= 0 {
		return errors.New("max-retry-times should be positive")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval should be positive")
	}

	return nil
}
