package services

import (
	"context"
	"testing"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDailyAccrual(t *testing.T) {
	f := newFixture(t)
	pool := f.addPool(t, "gold", "12", 30)
	plain := f.stake(t, f.newOwner(t, "5000"), pool.ID, "1000", false)
	compounding := f.stake(t, f.newOwner(t, "5000"), pool.ID, "1000", true)
	small := f.stake(t, f.newOwner(t, "5000"), pool.ID, "500", false)

	t.Run("fresh positions accrue nothing", func(t *testing.T) {
		report, err := f.srv.RunDailyAccrual(t.Context(), f.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, 3, report.Processed)
		assert.Zero(t, report.Accrued)
		assert.Zero(t, report.Compounded)

		records, err := f.store.GetRewardRecordsByPosition(t.Context(), plain.PositionID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("tenth day", func(t *testing.T) {
		now := f.clock.advance(10)
		report, err := f.srv.RunDailyAccrual(t.Context(), now)
		require.NoError(t, err)

		assert.Equal(t, accrual.DayKey(now), report.Day)
		assert.Equal(t, 3, report.Processed)
		assert.Equal(t, 3, report.Accrued)
		assert.Equal(t, 1, report.Compounded)
		assert.Empty(t, report.Failed)
		assertDecimal(t, "8.21917807", report.AccruedAmount)

		records, err := f.store.GetRewardRecordsByPosition(t.Context(), plain.PositionID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assertDecimal(t, "3.28767123", records[0].RewardAmount)
		assert.Equal(t, types.RewardTypeDaily, records[0].RewardType)
		assert.False(t, records[0].IsClaimed)

		position := f.position(t, plain.PositionID)
		assertDecimal(t, "3.28767123", position.RewardsAccrued)
		assertDecimal(t, "0", position.RewardsEarned)
		assert.Equal(t, report.Day, position.LastAccrualDay)

		smallPosition := f.position(t, small.PositionID)
		assertDecimal(t, "1.64383561", smallPosition.RewardsAccrued)

		compounded := f.position(t, compounding.PositionID)
		assertDecimal(t, "1003.28767123", compounded.AmountStaked)
		assertDecimal(t, "3.28767123", compounded.RewardsEarned)
		require.NoError(t, f.srv.VerifyRewardAudit(t.Context(), compounding.PositionID))
	})

	t.Run("second run of the day", func(t *testing.T) {
		report, err := f.srv.RunDailyAccrual(t.Context(), f.clock.Now())
		require.NoError(t, err)
		assert.Zero(t, report.Processed)

		records, err := f.store.GetRewardRecordsByPosition(t.Context(), plain.PositionID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("next day", func(t *testing.T) {
		before, err := f.srv.GetPendingRewards(t.Context(), f.position(t, plain.PositionID).OwnerID, plain.PositionID)
		require.NoError(t, err)

		now := f.clock.advance(1)
		report, err := f.srv.RunDailyAccrual(t.Context(), now)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Processed)

		records, err := f.store.GetRewardRecordsByPosition(t.Context(), plain.PositionID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assertDecimal(t, "0.32876712", records[1].RewardAmount)

		after, err := f.srv.GetPendingRewards(t.Context(), f.position(t, plain.PositionID).OwnerID, plain.PositionID)
		require.NoError(t, err)
		assert.True(t, after.Pending.GreaterThan(before.Pending))
		assertDecimal(t, "3.61643835", after.Pending)

		compounded := f.position(t, compounding.PositionID)
		assertDecimal(t, "1003.62832801", compounded.AmountStaked)
		require.NoError(t, f.srv.VerifyRewardAudit(t.Context(), compounding.PositionID))
	})

	t.Run("cancelled run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := f.srv.RunDailyAccrual(ctx, f.clock.advance(1))
		require.ErrorIs(t, err, context.Canceled)

		report, err := f.srv.RunDailyAccrual(t.Context(), f.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, 3, report.Processed)
	})
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	pool := f.addPool(t, "gold", "12", 30)
	owner := f.newOwner(t, "5000")
	staked := f.stake(t, owner, pool.ID, "1000", false)

	now := f.clock.advance(10)
	day := accrual.DayKey(now)
	require.NoError(t, f.store.SaveAccrualFailure(t.Context(), staked.PositionID, day, "ledger timeout"))
	require.NoError(t, f.store.SaveAccrualFailure(t.Context(), "gone", day, "ledger timeout"))

	report, err := f.srv.Reconcile(t.Context(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Retried)
	assert.Equal(t, 2, report.Recovered)
	assert.Empty(t, report.Mismatches)

	failures, err := f.store.GetAccrualFailures(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, failures)

	position := f.position(t, staked.PositionID)
	assert.Equal(t, day, position.LastAccrualDay)
	assertDecimal(t, "3.28767123", position.RewardsAccrued)
}
