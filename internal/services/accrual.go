package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rewardstack/staking-engine/internal/utils/poller"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type AccrualReport struct {
	Day string `json:"day"`
	// Processed counts positions stamped for the day
	Processed int `json:"processed"`
	// Accrued counts positions that received a daily reward record
	Accrued       int             `json:"accrued"`
	AccruedAmount decimal.Decimal `json:"accrued_amount"`
	Compounded    int             `json:"compounded"`
	Failed        []string        `json:"failed"`
}

type accrualOutcome struct {
	positionID string
	delta      decimal.Decimal
	compounded bool
	skipped    bool
	err        error
}

// StartAccrualPoller runs the daily accrual on start and then on the
// configured interval. Passes after the first one on a calendar day find
// nothing to do.
func (s *Service) StartAccrualPoller(ctx context.Context) {
	accrualPoller := poller.NewPoller(
		"accrual",
		s.cfg.Poller.AccrualInterval,
		metrics.RecordPollerDuration("accrual", func(ctx context.Context) error {
			_, err := s.RunDailyAccrual(ctx, s.now())
			return err
		}),
		poller.WithImmediateStart(),
	)
	go accrualPoller.Start(ctx)
}

// RunDailyAccrual materializes the yield of every active position for the
// calendar day of now. It is safe to run repeatedly, a position is processed
// at most once per day. Failures of single positions are recorded and do not
// stop the run. Cancelling ctx stops the run between positions.
func (s *Service) RunDailyAccrual(ctx context.Context, now time.Time) (*AccrualReport, error) {
	log := log.Ctx(ctx)
	day := accrual.DayKey(now)
	report := &AccrualReport{
		Day:           day,
		AccruedAmount: decimal.Zero,
		Failed:        []string{},
	}
	pools := newPoolCache(s)

	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		positions, err := s.db.GetPositionsForAccrual(ctx, day, afterID, s.cfg.Poller.AccrualChunkSize)
		if err != nil {
			return report, fmt.Errorf("failed to load positions for accrual: %w", err)
		}
		if len(positions) == 0 {
			break
		}
		afterID = positions[len(positions)-1].ID

		p := pool.NewWithResults[accrualOutcome]().WithMaxGoroutines(s.cfg.Poller.AccrualConcurrency)
		for _, position := range positions {
			p.Go(func() accrualOutcome {
				if ctx.Err() != nil {
					return accrualOutcome{positionID: position.ID, skipped: true}
				}
				return s.accruePosition(ctx, pools, position.ID, day, now)
			})
		}

		for _, outcome := range p.Wait() {
			s.collectOutcome(ctx, report, outcome)
		}
		log.Debug().
			Str("day", day).
			Int("chunk", len(positions)).
			Int("processed", report.Processed).
			Msg("accrual chunk done")
	}

	metrics.RecordAccrualResult("processed", report.Processed)
	metrics.RecordAccrualResult("accrued", report.Accrued)
	metrics.RecordAccrualResult("compounded", report.Compounded)
	metrics.RecordAccrualResult("failed", len(report.Failed))

	log.Info().
		Str("day", day).
		Int("processed", report.Processed).
		Int("accrued", report.Accrued).
		Stringer("accrued_amount", report.AccruedAmount).
		Int("compounded", report.Compounded).
		Int("failed", len(report.Failed)).
		Msg("daily accrual finished")

	return report, nil
}

func (s *Service) collectOutcome(ctx context.Context, report *AccrualReport, outcome accrualOutcome) {
	switch {
	case outcome.skipped:
		return
	case outcome.err != nil:
		report.Failed = append(report.Failed, outcome.positionID)
		log.Ctx(ctx).Error().
			Err(outcome.err).
			Str("position_id", outcome.positionID).
			Msg("failed to accrue position")
		if err := s.db.SaveAccrualFailure(ctx, outcome.positionID, report.Day, outcome.err.Error()); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("position_id", outcome.positionID).Msg("failed to record accrual failure")
		}
		return
	}

	report.Processed++
	if outcome.delta.IsPositive() {
		report.Accrued++
		report.AccruedAmount = report.AccruedAmount.Add(outcome.delta)
	}
	if outcome.compounded {
		report.Compounded++
	}
}

// accruePosition processes one position as a unit of work. The position is
// read again inside the unit so that retries see its latest version.
func (s *Service) accruePosition(
	ctx context.Context, pools *poolCache, positionID, day string, now time.Time,
) accrualOutcome {
	outcome := accrualOutcome{positionID: positionID, delta: decimal.Zero}

	err := s.runUnit(ctx, types.OperationAccrual, func(ctx context.Context, u *unit) error {
		outcome.delta = decimal.Zero
		outcome.compounded = false
		outcome.skipped = false

		position, err := s.db.GetStakePosition(ctx, positionID)
		if err != nil {
			return err
		}
		if !position.IsActive || position.LastAccrualDay == day {
			outcome.skipped = true
			return nil
		}

		pool, err := pools.get(ctx, position.PoolID)
		if err != nil {
			return err
		}

		accrued := accrual.AccruedSinceStake(
			position.AmountStaked, pool.YieldRateAnnualPercent, accrual.DaysBetween(position.StakeDate, now),
		)
		delta := accrual.DailyDelta(accrued, position.RewardsAccrued, position.RewardsEarned)
		if delta.IsPositive() {
			if err := s.db.SaveRewardRecord(ctx, &model.RewardRecordDocument{
				ID:              uuid.NewString(),
				StakePositionID: position.ID,
				OwnerID:         position.OwnerID,
				RewardAmount:    delta,
				RewardType:      types.RewardTypeDaily,
				CalculatedAt:    now,
			}); err != nil {
				return err
			}
		}
		if err := s.db.ApplyPositionAccrual(ctx, position.ID, position.Version, day, delta); err != nil {
			return err
		}
		outcome.delta = delta

		if !delta.IsPositive() {
			return nil
		}
		u.onCommit(s.publishFunc(&queue.PositionEvent{
			EventType:  queue.PositionAccruedEvent,
			PositionID: position.ID,
			OwnerID:    position.OwnerID,
			PoolID:     position.PoolID,
			Amount:     delta,
			Penalty:    decimal.Zero,
			OccurredAt: now,
		}))

		if !position.AutoRestake {
			return nil
		}
		// compound right away, the position version moved on with the accrual
		accruedPosition, err := s.db.GetStakePosition(ctx, position.ID)
		if err != nil {
			return err
		}
		if _, err := s.claim(ctx, u, accrualRequestID(position.ID, day), accruedPosition, now); err != nil {
			return err
		}
		outcome.compounded = true
		return nil
	})
	outcome.err = err

	return outcome
}

func accrualRequestID(positionID, day string) string {
	return "accrual:" + positionID + ":" + day
}

// poolCache memoizes pool definitions for one accrual run. Yield rates do not
// change while a run is in flight.
type poolCache struct {
	s     *Service
	mu    sync.Mutex
	pools map[string]*model.StakingPoolDocument
}

func newPoolCache(s *Service) *poolCache {
	return &poolCache{s: s, pools: make(map[string]*model.StakingPoolDocument)}
}

func (c *poolCache) get(ctx context.Context, poolID string) (*model.StakingPoolDocument, error) {
	c.mu.Lock()
	pool, ok := c.pools[poolID]
	c.mu.Unlock()
	if ok {
		return pool, nil
	}

	pool, err := c.s.db.GetStakingPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pools[poolID] = pool
	c.mu.Unlock()
	return pool, nil
}
