package db

import (
	"context"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
)

// WithdrawalOutcome is the state of a position after a withdrawal.
type WithdrawalOutcome struct {
	Remaining decimal.Decimal
	Closed    bool
}

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// WithTransaction runs fn as one atomic unit. Every call made with the
	// context passed to fn joins the unit. Nested calls join the outer unit.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	UpsertStakingPool(ctx context.Context, pool *model.StakingPoolDocument) error
	GetStakingPool(ctx context.Context, poolID string) (*model.StakingPoolDocument, error)
	GetActiveStakingPools(ctx context.Context) ([]*model.StakingPoolDocument, error)
	// ReserveCapacity atomically adds amount to the pool total and takes one
	// slot when the pool has finite slots.
	ReserveCapacity(ctx context.Context, poolID string, amount decimal.Decimal) error
	// ReleaseCapacity atomically subtracts amount from the pool total and, if
	// releaseSlot is set, gives one slot back.
	ReleaseCapacity(ctx context.Context, poolID string, amount decimal.Decimal, releaseSlot bool) error
	// AddCompoundedStake grows the pool total by compounded yield. Bounds and
	// slots are not involved.
	AddCompoundedStake(ctx context.Context, poolID string, amount decimal.Decimal) error

	SaveNewStakePosition(ctx context.Context, position *model.StakePositionDocument) error
	GetStakePosition(ctx context.Context, positionID string) (*model.StakePositionDocument, error)
	GetStakePositionsByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*model.StakePositionDocument, error)
	// GetPositionsForAccrual returns up to limit active positions not yet
	// processed on day, ordered by id and strictly after afterID.
	GetPositionsForAccrual(ctx context.Context, day string, afterID string, limit int64) ([]*model.StakePositionDocument, error)
	ApplyPositionClaim(
		ctx context.Context, positionID string, version uint64,
		rewardDelta decimal.Decimal, compound bool, claimedAt time.Time,
	) error
	ApplyPositionWithdrawal(
		ctx context.Context, positionID string, version uint64,
		amount decimal.Decimal, withdrawnAt time.Time,
	) (*WithdrawalOutcome, error)
	ApplyPositionAccrual(ctx context.Context, positionID string, version uint64, day string, delta decimal.Decimal) error
	GetOwnerStakeTotals(ctx context.Context, ownerID string) (*model.OwnerStakeTotals, error)
	CalculateActiveStatsAggregated(ctx context.Context) ([]*model.PoolStats, error)

	SaveRewardRecord(ctx context.Context, record *model.RewardRecordDocument) error
	// ClaimRewardRecords marks every unclaimed record of the position as
	// claimed and returns the sum of their amounts.
	ClaimRewardRecords(ctx context.Context, positionID string, claimedAt time.Time) (decimal.Decimal, error)
	GetRewardRecordsByPosition(ctx context.Context, positionID string) ([]*model.RewardRecordDocument, error)
	SumClaimedRewards(ctx context.Context, positionID string) (decimal.Decimal, error)

	GetAutoStakingConfig(ctx context.Context, ownerID string) (*model.AutoStakingConfigDocument, error)
	UpsertAutoStakingConfig(ctx context.Context, cfg *model.AutoStakingConfigDocument) error

	GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error

	SaveRequest(ctx context.Context, request *model.RequestDocument) error
	GetRequest(ctx context.Context, requestID string) (*model.RequestDocument, error)

	SaveAccrualFailure(ctx context.Context, positionID, day, reason string) error
	GetAccrualFailures(ctx context.Context, limit int64) ([]*model.AccrualFailureDocument, error)
	DeleteAccrualFailure(ctx context.Context, positionID string) error
}
