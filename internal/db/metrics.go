package db

import (
	"context"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

// WithTransaction measures the whole unit including the calls made by fn.
func (d *DbWithMetrics) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.run("WithTransaction", func() error {
		return d.db.WithTransaction(ctx, fn)
	})
}

func (d *DbWithMetrics) UpsertStakingPool(ctx context.Context, pool *model.StakingPoolDocument) error {
	return d.run("UpsertStakingPool", func() error {
		return d.db.UpsertStakingPool(ctx, pool)
	})
}

func (d *DbWithMetrics) GetStakingPool(ctx context.Context, poolID string) (result *model.StakingPoolDocument, err error) {
	//nolint:errcheck
	d.run("GetStakingPool", func() error {
		result, err = d.db.GetStakingPool(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) GetActiveStakingPools(ctx context.Context) (result []*model.StakingPoolDocument, err error) {
	//nolint:errcheck
	d.run("GetActiveStakingPools", func() error {
		result, err = d.db.GetActiveStakingPools(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) ReserveCapacity(ctx context.Context, poolID string, amount decimal.Decimal) error {
	return d.run("ReserveCapacity", func() error {
		return d.db.ReserveCapacity(ctx, poolID, amount)
	})
}

func (d *DbWithMetrics) ReleaseCapacity(ctx context.Context, poolID string, amount decimal.Decimal, releaseSlot bool) error {
	return d.run("ReleaseCapacity", func() error {
		return d.db.ReleaseCapacity(ctx, poolID, amount, releaseSlot)
	})
}

func (d *DbWithMetrics) AddCompoundedStake(ctx context.Context, poolID string, amount decimal.Decimal) error {
	return d.run("AddCompoundedStake", func() error {
		return d.db.AddCompoundedStake(ctx, poolID, amount)
	})
}

func (d *DbWithMetrics) SaveNewStakePosition(ctx context.Context, position *model.StakePositionDocument) error {
	return d.run("SaveNewStakePosition", func() error {
		return d.db.SaveNewStakePosition(ctx, position)
	})
}

func (d *DbWithMetrics) GetStakePosition(ctx context.Context, positionID string) (result *model.StakePositionDocument, err error) {
	//nolint:errcheck
	d.run("GetStakePosition", func() error {
		result, err = d.db.GetStakePosition(ctx, positionID)
		return err
	})

	return
}

func (d *DbWithMetrics) GetStakePositionsByOwner(ctx context.Context, ownerID string, activeOnly bool) (result []*model.StakePositionDocument, err error) {
	//nolint:errcheck
	d.run("GetStakePositionsByOwner", func() error {
		result, err = d.db.GetStakePositionsByOwner(ctx, ownerID, activeOnly)
		return err
	})

	return
}

func (d *DbWithMetrics) GetPositionsForAccrual(ctx context.Context, day string, afterID string, limit int64) (result []*model.StakePositionDocument, err error) {
	//nolint:errcheck
	d.run("GetPositionsForAccrual", func() error {
		result, err = d.db.GetPositionsForAccrual(ctx, day, afterID, limit)
		return err
	})

	return
}

func (d *DbWithMetrics) ApplyPositionClaim(
	ctx context.Context, positionID string, version uint64,
	rewardDelta decimal.Decimal, compound bool, claimedAt time.Time,
) error {
	return d.run("ApplyPositionClaim", func() error {
		return d.db.ApplyPositionClaim(ctx, positionID, version, rewardDelta, compound, claimedAt)
	})
}

func (d *DbWithMetrics) ApplyPositionWithdrawal(
	ctx context.Context, positionID string, version uint64,
	amount decimal.Decimal, withdrawnAt time.Time,
) (result *WithdrawalOutcome, err error) {
	//nolint:errcheck
	d.run("ApplyPositionWithdrawal", func() error {
		result, err = d.db.ApplyPositionWithdrawal(ctx, positionID, version, amount, withdrawnAt)
		return err
	})

	return
}

func (d *DbWithMetrics) ApplyPositionAccrual(ctx context.Context, positionID string, version uint64, day string, delta decimal.Decimal) error {
	return d.run("ApplyPositionAccrual", func() error {
		return d.db.ApplyPositionAccrual(ctx, positionID, version, day, delta)
	})
}

func (d *DbWithMetrics) GetOwnerStakeTotals(ctx context.Context, ownerID string) (result *model.OwnerStakeTotals, err error) {
	//nolint:errcheck
	d.run("GetOwnerStakeTotals", func() error {
		result, err = d.db.GetOwnerStakeTotals(ctx, ownerID)
		return err
	})

	return
}

func (d *DbWithMetrics) CalculateActiveStatsAggregated(ctx context.Context) (result []*model.PoolStats, err error) {
	//nolint:errcheck
	d.run("CalculateActiveStatsAggregated", func() error {
		result, err = d.db.CalculateActiveStatsAggregated(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveRewardRecord(ctx context.Context, record *model.RewardRecordDocument) error {
	return d.run("SaveRewardRecord", func() error {
		return d.db.SaveRewardRecord(ctx, record)
	})
}

func (d *DbWithMetrics) ClaimRewardRecords(ctx context.Context, positionID string, claimedAt time.Time) (result decimal.Decimal, err error) {
	//nolint:errcheck
	d.run("ClaimRewardRecords", func() error {
		result, err = d.db.ClaimRewardRecords(ctx, positionID, claimedAt)
		return err
	})

	return
}

func (d *DbWithMetrics) GetRewardRecordsByPosition(ctx context.Context, positionID string) (result []*model.RewardRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetRewardRecordsByPosition", func() error {
		result, err = d.db.GetRewardRecordsByPosition(ctx, positionID)
		return err
	})

	return
}

func (d *DbWithMetrics) SumClaimedRewards(ctx context.Context, positionID string) (result decimal.Decimal, err error) {
	//nolint:errcheck
	d.run("SumClaimedRewards", func() error {
		result, err = d.db.SumClaimedRewards(ctx, positionID)
		return err
	})

	return
}

func (d *DbWithMetrics) GetAutoStakingConfig(ctx context.Context, ownerID string) (result *model.AutoStakingConfigDocument, err error) {
	//nolint:errcheck
	d.run("GetAutoStakingConfig", func() error {
		result, err = d.db.GetAutoStakingConfig(ctx, ownerID)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertAutoStakingConfig(ctx context.Context, cfg *model.AutoStakingConfigDocument) error {
	return d.run("UpsertAutoStakingConfig", func() error {
		return d.db.UpsertAutoStakingConfig(ctx, cfg)
	})
}

func (d *DbWithMetrics) GetBalance(ctx context.Context, ownerID string) (result decimal.Decimal, err error) {
	//nolint:errcheck
	d.run("GetBalance", func() error {
		result, err = d.db.GetBalance(ctx, ownerID)
		return err
	})

	return
}

func (d *DbWithMetrics) DebitBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	return d.run("DebitBalance", func() error {
		return d.db.DebitBalance(ctx, ownerID, amount)
	})
}

func (d *DbWithMetrics) CreditBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	return d.run("CreditBalance", func() error {
		return d.db.CreditBalance(ctx, ownerID, amount)
	})
}

func (d *DbWithMetrics) SaveRequest(ctx context.Context, request *model.RequestDocument) error {
	return d.run("SaveRequest", func() error {
		return d.db.SaveRequest(ctx, request)
	})
}

func (d *DbWithMetrics) GetRequest(ctx context.Context, requestID string) (result *model.RequestDocument, err error) {
	//nolint:errcheck
	d.run("GetRequest", func() error {
		result, err = d.db.GetRequest(ctx, requestID)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveAccrualFailure(ctx context.Context, positionID, day, reason string) error {
	return d.run("SaveAccrualFailure", func() error {
		return d.db.SaveAccrualFailure(ctx, positionID, day, reason)
	})
}

func (d *DbWithMetrics) GetAccrualFailures(ctx context.Context, limit int64) (result []*model.AccrualFailureDocument, err error) {
	//nolint:errcheck
	d.run("GetAccrualFailures", func() error {
		result, err = d.db.GetAccrualFailures(ctx, limit)
		return err
	})

	return
}

func (d *DbWithMetrics) DeleteAccrualFailure(ctx context.Context, positionID string) error {
	return d.run("DeleteAccrualFailure", func() error {
		return d.db.DeleteAccrualFailure(ctx, positionID)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and failure status
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	failure := err != nil && !IsNotFoundError(err)
	metrics.RecordDbLatency(duration, method, failure)

	return err
}
