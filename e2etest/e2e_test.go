//go:build e2e

package e2etest

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/services"
	"github.com/rewardstack/staking-engine/pkg"
	"github.com/rewardstack/staking-engine/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRewardAutoStaking publishes an earned reward and expects the consumer
// to stake half of it into the owner's default pool.
func TestRewardAutoStaking(t *testing.T) {
	tm := StartManager(t)
	ctx := t.Context()

	pool := testutil.NewPool(testutil.WithSlots(10))
	require.NoError(t, tm.Service.ImportPools(ctx, []*model.StakingPoolDocument{pool}))

	owner := gofakeit.UUID()
	require.NoError(t, tm.Store.CreditBalance(ctx, owner, decimal.NewFromInt(5000)))
	_, err := tm.Service.UpsertAutoStakingConfig(ctx, owner, services.AutoStakingConfigUpdate{
		IsEnabled:         pkg.Ptr(true),
		DefaultPoolID:     pkg.Ptr(pool.ID),
		MinimumAutoStake:  pkg.Ptr(decimal.NewFromInt(100)),
		PercentageToStake: pkg.Ptr(decimal.NewFromInt(50)),
	})
	require.NoError(t, err)

	// dropped without a position event
	tm.PublishReward(t, &queue.RewardEarnedEvent{RequestID: gofakeit.UUID(), OwnerID: owner})

	reward := &queue.RewardEarnedEvent{
		RequestID: gofakeit.UUID(),
		OwnerID:   owner,
		Amount:    decimal.NewFromInt(1000),
	}
	tm.PublishReward(t, reward)

	routingKey, event := tm.NextPositionEvent(t)
	assert.Equal(t, "position.staked", routingKey)
	assert.Equal(t, owner, event.OwnerID)
	assert.Equal(t, pool.ID, event.PoolID)
	assert.True(t, decimal.NewFromInt(500).Equal(event.Amount), "staked %s", event.Amount)

	require.Eventually(t, func() bool {
		positions, err := tm.Service.GetPositions(ctx, owner, false)
		return err == nil && len(positions) == 1
	}, eventuallyWaitTimeOut, eventuallyPollTime)

	balance, err := tm.Store.GetBalance(ctx, owner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4500).Equal(balance), "balance %s", balance)
}

// TestUnstakePublishesEvent checks that api driven operations reach the
// exchange once committed.
func TestUnstakePublishesEvent(t *testing.T) {
	tm := StartManager(t)
	ctx := t.Context()

	pool := testutil.NewPool()
	require.NoError(t, tm.Service.ImportPools(ctx, []*model.StakingPoolDocument{pool}))

	owner := gofakeit.UUID()
	require.NoError(t, tm.Store.CreditBalance(ctx, owner, decimal.NewFromInt(1000)))

	staked, err := tm.Service.Stake(ctx, services.StakeRequest{
		RequestID: gofakeit.UUID(),
		OwnerID:   owner,
		PoolID:    pool.ID,
		Amount:    decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	routingKey, _ := tm.NextPositionEvent(t)
	require.Equal(t, "position.staked", routingKey)

	_, err = tm.Service.Unstake(ctx, services.UnstakeRequest{
		RequestID:  gofakeit.UUID(),
		OwnerID:    owner,
		PositionID: staked.PositionID,
	})
	require.NoError(t, err)

	routingKey, event := tm.NextPositionEvent(t)
	assert.Equal(t, "position.unstaked", routingKey)
	assert.True(t, event.Closed)
	// still locked, so the 10% penalty applies
	assert.True(t, decimal.NewFromInt(100).Equal(event.Penalty), "penalty %s", event.Penalty)
}
