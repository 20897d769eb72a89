package config

import (
	"fmt"
	"net/url"
	"time"
)

const defaultQueueProcessingTimeout = 5 * time.Second

type QueueConfig struct {
	Url                    string        `mapstructure:"url"`
	QueueUser              string        `mapstructure:"user"`
	QueuePassword          string        `mapstructure:"password"`
	RewardQueue            string        `mapstructure:"reward-queue"`
	EventExchange          string        `mapstructure:"event-exchange"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
	PrefetchCount          int           `mapstructure:"prefetch-count"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.RewardQueue == "" {
		return fmt.Errorf("missing reward queue name")
	}

	if cfg.EventExchange == "" {
		return fmt.Errorf("missing event exchange name")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		cfg.QueueProcessingTimeout = defaultQueueProcessingTimeout
	}

	if cfg.PrefetchCount <= 0 {
		cfg.PrefetchCount = 1
	}

	return nil
}

// AmqpURL builds the connection string with credentials embedded.
func (cfg *QueueConfig) AmqpURL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.QueueUser, cfg.QueuePassword),
		Host:   cfg.Url,
	}
	return u.String()
}
