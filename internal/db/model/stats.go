package model

import "github.com/shopspring/decimal"

// OwnerStakeTotals is the aggregated view of all positions of one owner.
type OwnerStakeTotals struct {
	TotalStaked         decimal.Decimal `bson:"total_staked"`
	TotalClaimed        decimal.Decimal `bson:"total_claimed"`
	PositionCount       int64           `bson:"position_count"`
	ActivePositionCount int64           `bson:"active_position_count"`
}

// PoolStats is the aggregated view of active positions of one pool.
type PoolStats struct {
	PoolID          string          `bson:"_id"`
	ActiveStake     decimal.Decimal `bson:"active_stake"`
	ActivePositions int64           `bson:"active_positions"`
}
