package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPositions(t *testing.T) {
	f := newFixture(t)
	pool := f.addPool(t, "gold", "12", 30)
	owner := f.newOwner(t, "10000")
	open := f.stake(t, owner, pool.ID, "1000", false)
	closing := f.stake(t, owner, pool.ID, "500", false)
	f.stake(t, f.newOwner(t, "1000"), pool.ID, "500", false)

	f.clock.advance(10)
	_, err := f.srv.Unstake(t.Context(), UnstakeRequest{OwnerID: owner, PositionID: closing.PositionID})
	require.NoError(t, err)

	active, err := f.srv.GetPositions(t.Context(), owner, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.PositionID, active[0].ID)
	assertDecimal(t, "3.28767123", active[0].PendingRewards)
	assert.True(t, active[0].IsLocked)

	all, err := f.srv.GetPositions(t.Context(), owner, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, view := range all {
		if view.ID == closing.PositionID {
			assert.Equal(t, "CLOSED", view.State.String())
			assertDecimal(t, "0", view.PendingRewards)
			assert.False(t, view.IsLocked)
		}
	}

	stats, err := f.srv.GetStakingStats(t.Context(), owner)
	require.NoError(t, err)
	assertDecimal(t, "1000", stats.TotalStaked)
	assertDecimal(t, "3.28767123", stats.TotalPending)
	assert.Equal(t, int64(2), stats.PositionCount)
	assert.Equal(t, int64(1), stats.ActivePositionCount)

	require.NoError(t, f.srv.calculateAndUpdateStats(t.Context()))
}
