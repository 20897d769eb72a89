package model

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type StakePositionDocument struct {
	ID           string          `bson:"_id"`
	OwnerID      string          `bson:"owner_id"`
	PoolID       string          `bson:"pool_id"`
	AmountStaked decimal.Decimal `bson:"amount_staked"`
	// RewardsEarned is the cumulative claimed yield
	RewardsEarned decimal.Decimal `bson:"rewards_earned"`
	// RewardsAccrued is the cumulative yield materialized into daily records
	RewardsAccrued  decimal.Decimal `bson:"rewards_accrued"`
	StakeDate       time.Time       `bson:"stake_date"`
	UnlockDate      time.Time       `bson:"unlock_date"`
	IsActive        bool            `bson:"is_active"`
	AutoRestake     bool            `bson:"auto_restake"`
	LastRewardClaim *time.Time      `bson:"last_reward_claim"`
	LastAccrualDay  string          `bson:"last_accrual_day"`
	Version         uint64          `bson:"version"`
	ClosedAt        *time.Time      `bson:"closed_at"`
}

func (p *StakePositionDocument) State() types.PositionState {
	if p.IsActive {
		return types.StateActive
	}
	return types.StateClosed
}

// IsLocked reports whether withdrawing at now is an early withdrawal.
func (p *StakePositionDocument) IsLocked(now time.Time) bool {
	return now.Before(p.UnlockDate)
}

// Clone returns a deep copy of the document.
func (p *StakePositionDocument) Clone() *StakePositionDocument {
	c := *p
	if p.LastRewardClaim != nil {
		t := *p.LastRewardClaim
		c.LastRewardClaim = &t
	}
	if p.ClosedAt != nil {
		t := *p.ClosedAt
		c.ClosedAt = &t
	}
	return &c
}
