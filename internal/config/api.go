package config

import (
	"fmt"
	"time"
)

const (
	defaultAPIPort        = 8090
	defaultRequestTimeout = 10 * time.Second
)

type APIConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

func (cfg *APIConfig) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("api host cannot be empty")
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return fmt.Errorf("api port must be between 1024 and 65535")
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	return nil
}

func (cfg *APIConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
