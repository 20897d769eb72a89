package model

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type AutoStakingConfigDocument struct {
	OwnerID            string          `bson:"_id"`
	IsEnabled          bool            `bson:"is_enabled"`
	DefaultPoolID      string          `bson:"default_pool_id"`
	MinimumAutoStake   decimal.Decimal `bson:"minimum_auto_stake"`
	PercentageToStake  decimal.Decimal `bson:"percentage_to_stake"`
	PreferredRiskLevel types.RiskLevel `bson:"preferred_risk_level"`
	AutoCompound       bool            `bson:"auto_compound"`
	UpdatedAt          time.Time       `bson:"updated_at"`
}
