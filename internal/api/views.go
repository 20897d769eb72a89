package api

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type autoStakingConfigView struct {
	IsEnabled          bool            `json:"is_enabled"`
	DefaultPoolID      string          `json:"default_pool_id,omitempty"`
	MinimumAutoStake   decimal.Decimal `json:"minimum_auto_stake"`
	PercentageToStake  decimal.Decimal `json:"percentage_to_stake"`
	PreferredRiskLevel types.RiskLevel `json:"preferred_risk_level,omitempty"`
	AutoCompound       bool            `json:"auto_compound"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func autoStakingView(cfg *model.AutoStakingConfigDocument) *autoStakingConfigView {
	return &autoStakingConfigView{
		IsEnabled:          cfg.IsEnabled,
		DefaultPoolID:      cfg.DefaultPoolID,
		MinimumAutoStake:   cfg.MinimumAutoStake,
		PercentageToStake:  cfg.PercentageToStake,
		PreferredRiskLevel: cfg.PreferredRiskLevel,
		AutoCompound:       cfg.AutoCompound,
		UpdatedAt:          cfg.UpdatedAt,
	}
}

type poolView struct {
	ID                            string           `json:"id"`
	Name                          string           `json:"name"`
	YieldRateAnnualPercent        decimal.Decimal  `json:"yield_rate_annual_percent"`
	MinimumStake                  decimal.Decimal  `json:"minimum_stake"`
	MaximumStake                  *decimal.Decimal `json:"maximum_stake,omitempty"`
	LockPeriodDays                uint32           `json:"lock_period_days"`
	EarlyWithdrawalPenaltyPercent decimal.Decimal  `json:"early_withdrawal_penalty_percent"`
	RiskLevel                     types.RiskLevel  `json:"risk_level,omitempty"`
	TotalStaked                   decimal.Decimal  `json:"total_staked"`
	AvailableSlots                *int64           `json:"available_slots,omitempty"`
}

func poolViews(pools []*model.StakingPoolDocument) []*poolView {
	views := make([]*poolView, 0, len(pools))
	for _, pool := range pools {
		views = append(views, &poolView{
			ID:                            pool.ID,
			Name:                          pool.Name,
			YieldRateAnnualPercent:        pool.YieldRateAnnualPercent,
			MinimumStake:                  pool.MinimumStake,
			MaximumStake:                  pool.MaximumStake,
			LockPeriodDays:                pool.LockPeriodDays,
			EarlyWithdrawalPenaltyPercent: pool.EarlyWithdrawalPenaltyPercent,
			RiskLevel:                     pool.RiskLevel,
			TotalStaked:                   pool.TotalStaked,
			AvailableSlots:                pool.AvailableSlots,
		})
	}
	return views
}
