package model

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type RewardRecordDocument struct {
	ID              string           `bson:"_id"`
	StakePositionID string           `bson:"stake_position_id"`
	OwnerID         string           `bson:"owner_id"`
	RewardAmount    decimal.Decimal  `bson:"reward_amount"`
	RewardType      types.RewardType `bson:"reward_type"`
	CalculatedAt    time.Time        `bson:"calculated_at"`
	IsClaimed       bool             `bson:"is_claimed"`
	ClaimedAt       *time.Time       `bson:"claimed_at"`
}
