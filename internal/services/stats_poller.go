package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsInterval,
		metrics.RecordPollerDuration("stats", func(ctx context.Context) error {
			return s.calculateAndUpdateStats(ctx)
		}),
	)
	go statsPoller.Start(ctx)
}

// calculateAndUpdateStats aggregates the active stake of every pool and
// publishes it as gauges.
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	startTime := time.Now()
	poolStats, err := s.db.CalculateActiveStatsAggregated(ctx)
	log.Debug().
		Dur("aggregation_duration_ms", time.Since(startTime)).
		Msg("stats aggregation completed")
	if err != nil {
		return fmt.Errorf("failed to calculate active stats: %w", err)
	}

	if len(poolStats) == 0 {
		log.Debug().Msg("no active positions found, skipping stats update")
		return nil
	}

	var positions int64
	for _, stat := range poolStats {
		metrics.RecordPoolStats(stat.PoolID, stat.ActiveStake, stat.ActivePositions)
		positions += stat.ActivePositions
	}

	log.Info().
		Int("pool_count", len(poolStats)).
		Int64("active_positions", positions).
		Msg("updated pool stats")

	return nil
}
