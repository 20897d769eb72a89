package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type PoolOption func(*model.StakingPoolDocument)

func WithSlots(slots int64) PoolOption {
	return func(p *model.StakingPoolDocument) {
		p.AvailableSlots = &slots
	}
}

func WithMaximum(maximum string) PoolOption {
	return func(p *model.StakingPoolDocument) {
		value := decimal.RequireFromString(maximum)
		p.MaximumStake = &value
	}
}

func WithRisk(risk types.RiskLevel) PoolOption {
	return func(p *model.StakingPoolDocument) {
		p.RiskLevel = risk
	}
}

func Inactive() PoolOption {
	return func(p *model.StakingPoolDocument) {
		p.IsActive = false
	}
}

// NewPool returns an active 12% pool with a 100 minimum and a 30 day lock.
// Slots are unlimited unless WithSlots is given.
func NewPool(opts ...PoolOption) *model.StakingPoolDocument {
	pool := &model.StakingPoolDocument{
		ID:                            uuid.NewString(),
		Name:                          gofakeit.Company(),
		YieldRateAnnualPercent:        decimal.RequireFromString("12"),
		MinimumStake:                  decimal.RequireFromString("100"),
		LockPeriodDays:                30,
		EarlyWithdrawalPenaltyPercent: decimal.RequireFromString("10"),
		RiskLevel:                     types.RiskLow,
		IsActive:                      true,
	}
	for _, opt := range opts {
		opt(pool)
	}
	return pool
}

// RandomSuffix returns n random lowercase letters, used to keep docker
// container names unique between runs.
func RandomSuffix(n int) string {
	return strings.ToLower(gofakeit.LetterN(uint(n)))
}
