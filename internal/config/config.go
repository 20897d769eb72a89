package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "STAKING"

type Config struct {
	Db      DbConfig      `mapstructure:"db"`
	Poller  PollerConfig  `mapstructure:"poller"`
	Staking StakingConfig `mapstructure:"staking"`
	Queue   *QueueConfig  `mapstructure:"queue"`
	API     APIConfig     `mapstructure:"api"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	if err := cfg.Staking.Validate(); err != nil {
		return fmt.Errorf("staking: %w", err)
	}

	// queue is optional, rewards can be routed through the api only
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}

	if err := cfg.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Every key can be overridden with an environment variable, e.g.
// STAKING_DB_PASSWORD overrides db.password.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", DbTypeMongo)
	v.SetDefault("poller.accrual-interval", defaultAccrualInterval)
	v.SetDefault("poller.accrual-chunk-size", defaultAccrualChunkSize)
	v.SetDefault("poller.accrual-concurrency", defaultAccrualConcurrency)
	v.SetDefault("poller.reconcile-interval", defaultReconcileInterval)
	v.SetDefault("poller.stats-interval", defaultStatsInterval)
	v.SetDefault("staking.max-retry-times", defaultMaxRetryTimes)
	v.SetDefault("staking.retry-interval", defaultRetryInterval)
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", defaultAPIPort)
	v.SetDefault("api.request-timeout", defaultRequestTimeout)
	v.SetDefault("metrics.host", "0.0.0.0")
	v.SetDefault("metrics.port", defaultMetricsPort)
}
