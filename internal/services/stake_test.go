package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStake(t *testing.T) {
	t.Run("debits balance and reserves capacity", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withSlots(5))
		owner := f.newOwner(t, "10000")

		result := f.stake(t, owner, pool.ID, "1000", false)
		assert.False(t, result.Replayed)
		assert.Equal(t, genesis.AddDate(0, 0, 30), result.UnlockDate)

		assertDecimal(t, "9000", f.balance(t, owner))
		stored := f.pool(t, pool.ID)
		assertDecimal(t, "1000", stored.TotalStaked)
		assert.Equal(t, int64(4), *stored.AvailableSlots)

		position := f.position(t, result.PositionID)
		assert.Equal(t, owner, position.OwnerID)
		assert.True(t, position.IsActive)
		assertDecimal(t, "0", position.RewardsEarned)
		assert.Equal(t, genesis, position.StakeDate)
	})
	t.Run("capacity failures change nothing", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withMaximum("5000"))
		owner := f.newOwner(t, "10000")

		cases := []struct {
			amount string
			reason error
		}{
			{"99.99999999", types.ErrBelowMinimum},
			{"5000.00000001", types.ErrAboveMaximum},
		}
		for _, tc := range cases {
			_, err := f.srv.Stake(t.Context(), StakeRequest{
				OwnerID: owner,
				PoolID:  pool.ID,
				Amount:  decimal.RequireFromString(tc.amount),
			})
			requireCode(t, err, types.ValidationError)
			assert.ErrorIs(t, err, tc.reason)
		}

		pool.IsActive = false
		require.NoError(t, f.srv.ImportPools(t.Context(), []*model.StakingPoolDocument{pool}))
		_, err := f.srv.Stake(t.Context(), StakeRequest{
			OwnerID: owner,
			PoolID:  pool.ID,
			Amount:  decimal.NewFromInt(500),
		})
		requireCode(t, err, types.ValidationError)
		assert.ErrorIs(t, err, types.ErrPoolInactive)

		assertDecimal(t, "10000", f.balance(t, owner))
		assertDecimal(t, "0", f.pool(t, pool.ID).TotalStaked)
	})
	t.Run("insufficient balance", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withSlots(1))
		owner := f.newOwner(t, "500")

		_, err := f.srv.Stake(t.Context(), StakeRequest{
			OwnerID: owner,
			PoolID:  pool.ID,
			Amount:  decimal.NewFromInt(1000),
		})
		requireCode(t, err, types.InsufficientBalance)

		assertDecimal(t, "500", f.balance(t, owner))
		stored := f.pool(t, pool.ID)
		assert.Equal(t, int64(1), *stored.AvailableSlots)
		assertDecimal(t, "0", stored.TotalStaked)
	})
	t.Run("invalid amounts", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30)
		owner := f.newOwner(t, "10000")

		for _, amount := range []string{"0", "-5", "100.000000001"} {
			_, err := f.srv.Stake(t.Context(), StakeRequest{
				OwnerID: owner,
				PoolID:  pool.ID,
				Amount:  decimal.RequireFromString(amount),
			})
			requireCode(t, err, types.ValidationError)
		}
	})
	t.Run("unknown pool", func(t *testing.T) {
		f := newFixture(t)
		owner := f.newOwner(t, "10000")

		_, err := f.srv.Stake(t.Context(), StakeRequest{
			OwnerID: owner,
			PoolID:  "missing",
			Amount:  decimal.NewFromInt(500),
		})
		requireCode(t, err, types.NotFound)
	})
	t.Run("replayed request id", func(t *testing.T) {
		f := newFixture(t)
		pool := f.addPool(t, "gold", "12", 30, withSlots(5))
		owner := f.newOwner(t, "10000")
		req := StakeRequest{
			RequestID: "stake-1",
			OwnerID:   owner,
			PoolID:    pool.ID,
			Amount:    decimal.NewFromInt(1000),
		}

		first, err := f.srv.Stake(t.Context(), req)
		require.NoError(t, err)
		second, err := f.srv.Stake(t.Context(), req)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.PositionID, second.PositionID)
		assertDecimal(t, "9000", f.balance(t, owner))
		assert.Equal(t, int64(4), *f.pool(t, pool.ID).AvailableSlots)

		_, err = f.srv.Claim(t.Context(), ClaimRequest{
			RequestID:  "stake-1",
			OwnerID:    owner,
			PositionID: first.PositionID,
		})
		requireCode(t, err, types.ValidationError)
	})
}

func TestStakeSingleSlotRace(t *testing.T) {
	f := newFixture(t)
	pool := f.addPool(t, "scarce", "20", 30, withSlots(1))

	const stakers = 8
	owners := make([]string, stakers)
	for i := range owners {
		owners[i] = f.newOwner(t, "1000")
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, owner := range owners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.srv.Stake(t.Context(), StakeRequest{
				RequestID: gofakeit.UUID(),
				OwnerID:   owner,
				PoolID:    pool.ID,
				Amount:    decimal.NewFromInt(500),
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireCode(t, err, types.CapacityError)
		assert.True(t, errors.Is(err, types.ErrNoSlots))
	}
	assert.Equal(t, 1, succeeded)

	stored := f.pool(t, pool.ID)
	assert.Equal(t, int64(0), *stored.AvailableSlots)
	assertDecimal(t, "500", stored.TotalStaked)

	debited := decimal.Zero
	for _, owner := range owners {
		debited = debited.Add(decimal.NewFromInt(1000).Sub(f.balance(t, owner)))
	}
	assertDecimal(t, "500", debited)
}
