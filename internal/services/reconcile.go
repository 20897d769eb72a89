package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rewardstack/staking-engine/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

type ReconcileReport struct {
	Retried   int `json:"retried"`
	Recovered int `json:"recovered"`
	// Mismatches lists positions whose claimed records do not add up to
	// their claimed rewards
	Mismatches []string `json:"mismatches"`
}

func (s *Service) StartReconcilePoller(ctx context.Context) {
	reconcilePoller := poller.NewPoller(
		"reconcile",
		s.cfg.Poller.ReconcileInterval,
		metrics.RecordPollerDuration("reconcile", func(ctx context.Context) error {
			_, err := s.Reconcile(ctx, s.now())
			return err
		}),
	)
	go reconcilePoller.Start(ctx)
}

// Reconcile retries the accrual of positions that failed in a previous run
// and verifies the reward audit of every retried position.
func (s *Service) Reconcile(ctx context.Context, now time.Time) (*ReconcileReport, error) {
	log := log.Ctx(ctx)
	report := &ReconcileReport{Mismatches: []string{}}

	failures, err := s.db.GetAccrualFailures(ctx, s.cfg.Poller.AccrualChunkSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load accrual failures: %w", err)
	}

	day := accrual.DayKey(now)
	pools := newPoolCache(s)
	for _, failure := range failures {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Retried++

		outcome := s.accruePosition(ctx, pools, failure.PositionID, day, now)
		if outcome.err != nil && !types.HasCode(outcome.err, types.NotFound) {
			log.Warn().
				Err(outcome.err).
				Str("position_id", failure.PositionID).
				Int32("attempts", failure.Attempts+1).
				Msg("accrual retry failed")
			if err := s.db.SaveAccrualFailure(ctx, failure.PositionID, day, outcome.err.Error()); err != nil {
				return report, err
			}
			continue
		}

		if err := s.db.DeleteAccrualFailure(ctx, failure.PositionID); err != nil && !db.IsNotFoundError(err) {
			return report, err
		}
		report.Recovered++

		if outcome.err != nil {
			// the position is gone, nothing left to audit
			continue
		}
		if err := s.VerifyRewardAudit(ctx, failure.PositionID); err != nil {
			report.Mismatches = append(report.Mismatches, failure.PositionID)
			log.Error().Err(err).Str("position_id", failure.PositionID).Msg("reward audit mismatch")
		}
	}

	log.Info().
		Int("retried", report.Retried).
		Int("recovered", report.Recovered).
		Int("mismatches", len(report.Mismatches)).
		Msg("reconciliation finished")

	return report, nil
}

// VerifyRewardAudit checks that the claimed reward records of a position add
// up to its claimed rewards.
func (s *Service) VerifyRewardAudit(ctx context.Context, positionID string) error {
	position, err := s.db.GetStakePosition(ctx, positionID)
	if err != nil {
		return toServiceError(err)
	}

	claimed, err := s.db.SumClaimedRewards(ctx, positionID)
	if err != nil {
		return toServiceError(err)
	}

	if !claimed.Equal(position.RewardsEarned) {
		return fmt.Errorf(
			"position %s: claimed records sum to %s, rewards earned is %s",
			positionID, claimed, position.RewardsEarned,
		)
	}
	return nil
}
