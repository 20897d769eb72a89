//go:build integration

package db_test

import (
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func errorAs(err error, target any) bool {
	return errors.As(err, target)
}

func createPool(t *testing.T, opts ...testutil.PoolOption) *model.StakingPoolDocument {
	t.Helper()

	pool := testutil.NewPool(append([]testutil.PoolOption{testutil.WithMaximum("10000")}, opts...)...)
	err := testDB.UpsertStakingPool(t.Context(), pool)
	require.NoError(t, err)

	return pool
}

func createPosition(t *testing.T, poolID string, amount string) *model.StakePositionDocument {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	position := &model.StakePositionDocument{
		ID:             uuid.NewString(),
		OwnerID:        gofakeit.UUID(),
		PoolID:         poolID,
		AmountStaked:   decimal.RequireFromString(amount),
		RewardsEarned:  decimal.Zero,
		RewardsAccrued: decimal.Zero,
		StakeDate:      now,
		UnlockDate:     now.AddDate(0, 0, 30),
		IsActive:       true,
	}

	err := testDB.SaveNewStakePosition(t.Context(), position)
	require.NoError(t, err)

	return position
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
