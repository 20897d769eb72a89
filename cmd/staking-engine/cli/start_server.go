package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/api"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking api, the accrual pollers and the reward consumer",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	dbClient, releaseDb, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer releaseDb()

	var (
		eventConsumer consumer.EventConsumer = consumer.NoopConsumer{}
		queueManager  *queue.QueueManager
	)
	if cfg.Queue != nil {
		queueManager, err = queue.NewQueueManager(cfg.Queue)
		if err != nil {
			return fmt.Errorf("failed to initialize queue manager: %w", err)
		}
		eventConsumer = queueManager
	}
	if err := eventConsumer.Start(); err != nil {
		return fmt.Errorf("failed to start event consumer: %w", err)
	}
	defer func() {
		if err := eventConsumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}()

	service := newService(cfg, dbClient, eventConsumer)

	if queueManager != nil {
		if err := queueManager.StartRewardConsumer(ctx, service.HandleRewardEvent); err != nil {
			return err
		}
	}

	service.StartPollers(ctx)

	server := api.New(&cfg.API, service)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("api server stopped: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
