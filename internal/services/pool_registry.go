package services

import (
	"context"
	"sort"
	"time"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
)

// maxLockPeriodDays caps lock periods at ten years.
const maxLockPeriodDays = 3650

// ListActivePools returns active pools by descending yield, shorter lock
// first on equal yield and pool id last.
func (s *Service) ListActivePools(ctx context.Context) ([]*model.StakingPoolDocument, error) {
	pools, err := s.db.GetActiveStakingPools(ctx)
	if err != nil {
		return nil, toServiceError(err)
	}

	sortPools(pools)
	return pools, nil
}

func sortPools(pools []*model.StakingPoolDocument) {
	sort.SliceStable(pools, func(i, j int) bool {
		a, b := pools[i], pools[j]
		if cmp := a.YieldRateAnnualPercent.Cmp(b.YieldRateAnnualPercent); cmp != 0 {
			return cmp > 0
		}
		if a.LockPeriodDays != b.LockPeriodDays {
			return a.LockPeriodDays < b.LockPeriodDays
		}
		return a.ID < b.ID
	})
}

func (s *Service) GetPool(ctx context.Context, poolID string) (*model.StakingPoolDocument, error) {
	pool, err := s.db.GetStakingPool(ctx, poolID)
	if err != nil {
		return nil, toServiceError(err)
	}
	return pool, nil
}

// ImportPools validates and upserts pool definitions. Counters of existing
// pools are kept.
func (s *Service) ImportPools(ctx context.Context, pools []*model.StakingPoolDocument) error {
	for _, pool := range pools {
		if err := validatePool(pool); err != nil {
			return err
		}
	}

	for _, pool := range pools {
		if err := s.db.UpsertStakingPool(ctx, pool); err != nil {
			return toServiceError(err)
		}
		log.Ctx(ctx).Info().
			Str("pool_id", pool.ID).
			Bool("is_active", pool.IsActive).
			Msg("staking pool imported")
	}

	return nil
}

func validatePool(pool *model.StakingPoolDocument) error {
	switch {
	case pool.ID == "":
		return types.NewValidationError("pool id is required")
	case pool.Name == "":
		return types.NewValidationError("pool %s: name is required", pool.ID)
	case pool.YieldRateAnnualPercent.IsNegative():
		return types.NewValidationError("pool %s: yield rate must not be negative", pool.ID)
	case pool.MinimumStake.IsNegative():
		return types.NewValidationError("pool %s: minimum stake must not be negative", pool.ID)
	case pool.MaximumStake != nil && pool.MaximumStake.LessThan(pool.MinimumStake):
		return types.NewValidationError("pool %s: maximum stake is below minimum stake", pool.ID)
	case pool.EarlyWithdrawalPenaltyPercent.IsNegative() || pool.EarlyWithdrawalPenaltyPercent.GreaterThan(hundredPercent):
		return types.NewValidationError("pool %s: penalty must be within [0, 100]", pool.ID)
	case pool.LockPeriodDays > maxLockPeriodDays:
		return types.NewValidationError("pool %s: lock period exceeds %d days", pool.ID, maxLockPeriodDays)
	case pool.AvailableSlots != nil && *pool.AvailableSlots < 0:
		return types.NewValidationError("pool %s: available slots must not be negative", pool.ID)
	case !pool.RiskLevel.Valid():
		return types.NewValidationError("pool %s: unknown risk level %q", pool.ID, pool.RiskLevel)
	case !isLedgerAmount(pool.MinimumStake):
		return types.NewValidationError("pool %s: minimum stake exceeds %d decimals", pool.ID, accrual.Precision)
	}
	return nil
}

// unlockDate is the end of the lock period of a stake made at stakeDate.
// Calendar arithmetic keeps long lock periods clear of time.Duration limits.
func unlockDate(pool *model.StakingPoolDocument, stakeDate time.Time) time.Time {
	return stakeDate.AddDate(0, 0, int(pool.LockPeriodDays))
}
