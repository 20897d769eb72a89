package services

import (
	"testing"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnstake(t *testing.T) {
	t.Run("penalty a day before unlock", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withSlots(3))
		owner := f.newOwner(t, "10000")
		staked := f.stake(t, owner, pool.ID, "1000", false)

		f.clock.advance(29)
		result, err := f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: staked.PositionID})
		require.NoError(t, err)
		assertDecimal(t, "1000", result.Amount)
		assertDecimal(t, "100", result.Penalty)
		assertDecimal(t, "900", result.Net)
		assert.True(t, result.Closed)

		assertDecimal(t, "9900", f.balance(t, owner))
		stored := f.pool(t, pool.ID)
		assertDecimal(t, "0", stored.TotalStaked)
		assert.Equal(t, int64(3), *stored.AvailableSlots)
	})
	t.Run("no penalty at unlock", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30)
		owner := f.newOwner(t, "10000")
		staked := f.stake(t, owner, pool.ID, "1000", false)

		f.clock.advance(30)
		result, err := f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: staked.PositionID})
		require.NoError(t, err)
		assertDecimal(t, "0", result.Penalty)
		assertDecimal(t, "1000", result.Net)
		assertDecimal(t, "10000", f.balance(t, owner))
	})
	t.Run("partial then full", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withSlots(5))
		owner := f.newOwner(t, "10000")
		staked := f.stake(t, owner, pool.ID, "1000", false)
		f.clock.advance(30)

		partial, err := f.srv.Unstake(t.Context(), UnstakeRequest{
			OwnerID:    owner,
			PositionID: staked.PositionID,
			Amount:     decimalPtr("400"),
		})
		require.NoError(t, err)
		assert.False(t, partial.Closed)

		position := f.position(t, staked.PositionID)
		assert.True(t, position.IsActive)
		assertDecimal(t, "600", position.AmountStaked)
		stored := f.pool(t, pool.ID)
		assertDecimal(t, "600", stored.TotalStaked)
		assert.Equal(t, int64(4), *stored.AvailableSlots)

		_, err = f.srv.Unstake(t.Context(), UnstakeRequest{
			OwnerID:    owner,
			PositionID: staked.PositionID,
			Amount:     decimalPtr("600.00000001"),
		})
		requireCode(t, err, types.ValidationError)

		full, err := f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: staked.PositionID})
		require.NoError(t, err)
		assert.True(t, full.Closed)
		assertDecimal(t, "600", full.Amount)

		stored = f.pool(t, pool.ID)
		assertDecimal(t, "0", stored.TotalStaked)
		assert.Equal(t, int64(5), *stored.AvailableSlots)
		assertDecimal(t, "10000", f.balance(t, owner))
	})
	t.Run("closed position is immutable", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30)
		owner := f.newOwner(t, "10000")
		staked := f.stake(t, owner, pool.ID, "1000", false)
		f.clock.advance(40)

		_, err := f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: staked.PositionID})
		require.NoError(t, err)
		closed := f.position(t, staked.PositionID)
		assert.False(t, closed.IsActive)
		require.NotNil(t, closed.ClosedAt)

		_, err = f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: staked.PositionID})
		requireCode(t, err, types.PositionClosed)
		_, err = f.srv.Claim(t.Context(), ClaimRequest{OwnerID: owner, PositionID: staked.PositionID})
		requireCode(t, err, types.PositionClosed)

		report, err := f.srv.RunDailyAccrual(t.Context(), f.clock.advance(1))
		require.NoError(t, err)
		assert.Zero(t, report.Processed)

		assert.Equal(t, closed, f.position(t, staked.PositionID))
	})
	t.Run("invalid amounts", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30)
		owner := f.newOwner(t, "10000")
		staked := f.stake(t, owner, pool.ID, "1000", false)

		for _, amount := range []string{"0", "-1"} {
			_, err := f.srv.Unstake(t.Context(), UnstakeRequest{
				OwnerID:    owner,
				PositionID: staked.PositionID,
				Amount:     decimalPtr(amount),
			})
			requireCode(t, err, types.ValidationError)
		}
	})
}

// Every unit of principal and yield is either on the balance, staked or
// burned as a penalty.
func TestConservation(t *testing.T) {
	f := newFixture(t)
	pool := f.addPool(t, "gold", "12", 30)
	owner := f.newOwner(t, "10000")
	staked := f.stake(t, owner, pool.ID, "1000", false)

	f.clock.advance(10)
	claimed, err := f.srv.Claim(t.Context(), ClaimRequest{OwnerID: owner, PositionID: staked.PositionID})
	require.NoError(t, err)

	f.clock.advance(5)
	partial, err := f.srv.Unstake(t.Context(), UnstakeRequest{
		OwnerID:    owner,
		PositionID: staked.PositionID,
		Amount:     decimalPtr("250"),
	})
	require.NoError(t, err)

	position := f.position(t, staked.PositionID)
	total := f.balance(t, owner).Add(position.AmountStaked).Add(partial.Penalty)
	expected := claimed.Amount.Add(decimal.NewFromInt(10000))
	assert.True(t, expected.Equal(total), "expected %s, got %s", expected, total)
	assertDecimal(t, "25", partial.Penalty)

	stats, err := f.srv.GetStakingStats(t.Context(), owner)
	require.NoError(t, err)
	assertDecimal(t, "750", stats.TotalStaked)
	assertDecimal(t, claimed.Amount.String(), stats.TotalClaimed)
	assert.Equal(t, int64(1), stats.ActivePositionCount)
	assert.True(t, stats.TotalPending.IsPositive())
}
