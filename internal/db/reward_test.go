//go:build integration

package db_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardRecords(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	position := createPosition(t, "pool", "1000")
	now := time.Now().UTC().Truncate(time.Millisecond)

	for i, amount := range []string{"0.32876712", "0.32876712"} {
		err := testDB.SaveRewardRecord(ctx, &model.RewardRecordDocument{
			ID:              uuid.NewString(),
			StakePositionID: position.ID,
			OwnerID:         position.OwnerID,
			RewardAmount:    decimal.RequireFromString(amount),
			RewardType:      types.RewardTypeDaily,
			CalculatedAt:    now.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	claimed, err := testDB.SumClaimedRewards(ctx, position.ID)
	require.NoError(t, err)
	assert.True(t, claimed.IsZero())

	sum, err := testDB.ClaimRewardRecords(ctx, position.ID, now)
	require.NoError(t, err)
	assertDecimal(t, "0.65753424", sum)

	// second claim finds nothing left
	sum, err = testDB.ClaimRewardRecords(ctx, position.ID, now)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	claimed, err = testDB.SumClaimedRewards(ctx, position.ID)
	require.NoError(t, err)
	assertDecimal(t, "0.65753424", claimed)

	records, err := testDB.GetRewardRecordsByPosition(ctx, position.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.True(t, record.IsClaimed)
		assert.NotNil(t, record.ClaimedAt)
	}

	err = testDB.SaveRewardRecord(ctx, records[0])
	assert.True(t, db.IsDuplicateKeyError(err))
}

func TestBalances(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	owner := uuid.NewString()

	balance, err := testDB.GetBalance(ctx, owner)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	err = testDB.DebitBalance(ctx, owner, decimal.RequireFromString("1"))
	assert.True(t, db.IsInsufficientBalanceError(err))

	require.NoError(t, testDB.CreditBalance(ctx, owner, decimal.RequireFromString("10.5")))
	require.NoError(t, testDB.DebitBalance(ctx, owner, decimal.RequireFromString("10.5")))

	err = testDB.DebitBalance(ctx, owner, decimal.RequireFromString("0.00000001"))
	assert.True(t, db.IsInsufficientBalanceError(err))
}

func TestRequestsAndFailures(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("requests", func(t *testing.T) {
		_, err := testDB.GetRequest(ctx, "missing")
		assert.True(t, db.IsNotFoundError(err))

		request := &model.RequestDocument{
			RequestID: uuid.NewString(),
			Operation: types.OperationStake,
			OwnerID:   "owner",
			Amount:    decimal.RequireFromString("100"),
			CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		}
		require.NoError(t, testDB.SaveRequest(ctx, request))
		assert.True(t, db.IsDuplicateKeyError(testDB.SaveRequest(ctx, request)))

		stored, err := testDB.GetRequest(ctx, request.RequestID)
		require.NoError(t, err)
		assert.Equal(t, types.OperationStake, stored.Operation)
		assertDecimal(t, "100", stored.Amount)
	})
	t.Run("accrual failures", func(t *testing.T) {
		require.NoError(t, testDB.SaveAccrualFailure(ctx, "p1", "2026-01-01", "timeout"))
		require.NoError(t, testDB.SaveAccrualFailure(ctx, "p1", "2026-01-02", "timeout"))

		failures, err := testDB.GetAccrualFailures(ctx, 10)
		require.NoError(t, err)
		require.Len(t, failures, 1)
		assert.Equal(t, int32(2), failures[0].Attempts)
		assert.Equal(t, "2026-01-02", failures[0].Day)

		require.NoError(t, testDB.DeleteAccrualFailure(ctx, "p1"))
		assert.True(t, db.IsNotFoundError(testDB.DeleteAccrualFailure(ctx, "p1")))
	})
	t.Run("auto staking config", func(t *testing.T) {
		_, err := testDB.GetAutoStakingConfig(ctx, "owner")
		assert.True(t, db.IsNotFoundError(err))

		cfg := &model.AutoStakingConfigDocument{
			OwnerID:           "owner",
			IsEnabled:         true,
			MinimumAutoStake:  decimal.RequireFromString("10"),
			PercentageToStake: decimal.RequireFromString("50"),
		}
		require.NoError(t, testDB.UpsertAutoStakingConfig(ctx, cfg))
		cfg.IsEnabled = false
		require.NoError(t, testDB.UpsertAutoStakingConfig(ctx, cfg))

		stored, err := testDB.GetAutoStakingConfig(ctx, "owner")
		require.NoError(t, err)
		assert.False(t, stored.IsEnabled)
		assertDecimal(t, "50", stored.PercentageToStake)
	})
}
