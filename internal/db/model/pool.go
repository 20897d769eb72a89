package model

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type StakingPoolDocument struct {
	ID                            string           `bson:"_id" yaml:"id"`
	Name                          string           `bson:"name" yaml:"name"`
	YieldRateAnnualPercent        decimal.Decimal  `bson:"yield_rate_annual_percent" yaml:"yield_rate_annual_percent"`
	MinimumStake                  decimal.Decimal  `bson:"minimum_stake" yaml:"minimum_stake"`
	MaximumStake                  *decimal.Decimal `bson:"maximum_stake" yaml:"maximum_stake"`
	LockPeriodDays                uint32           `bson:"lock_period_days" yaml:"lock_period_days"`
	EarlyWithdrawalPenaltyPercent decimal.Decimal  `bson:"early_withdrawal_penalty_percent" yaml:"early_withdrawal_penalty_percent"`
	RiskLevel                     types.RiskLevel  `bson:"risk_level" yaml:"risk_level"`
	IsActive                      bool             `bson:"is_active" yaml:"is_active"`
	TotalStaked                   decimal.Decimal  `bson:"total_staked" yaml:"-"`
	// AvailableSlots is nil for pools without a capacity limit
	AvailableSlots *int64    `bson:"available_slots" yaml:"available_slots"`
	CreatedAt      time.Time `bson:"created_at" yaml:"-"`
	UpdatedAt      time.Time `bson:"updated_at" yaml:"-"`
}

func (p *StakingPoolDocument) HasFiniteSlots() bool {
	return p.AvailableSlots != nil
}

// CheckStake returns the capacity reason that prevents staking amount into
// the pool, or nil. Slot availability is checked by the atomic reservation.
func (p *StakingPoolDocument) CheckStake(amount decimal.Decimal) error {
	if !p.IsActive {
		return types.ErrPoolInactive
	}
	if amount.LessThan(p.MinimumStake) {
		return types.ErrBelowMinimum
	}
	if p.MaximumStake != nil && amount.GreaterThan(*p.MaximumStake) {
		return types.ErrAboveMaximum
	}
	return nil
}
