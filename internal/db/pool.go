package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertStakingPool creates the pool or updates its definition. Running
// counters (total_staked, available_slots) of an existing pool are never
// overwritten; they are owned by capacity reservations.
func (db *Database) UpsertStakingPool(ctx context.Context, pool *model.StakingPoolDocument) error {
	now := time.Now().UTC()

	filter := bson.M{"_id": pool.ID}
	update := bson.M{
		"$set": bson.M{
			"name":                             pool.Name,
			"yield_rate_annual_percent":        pool.YieldRateAnnualPercent,
			"minimum_stake":                    pool.MinimumStake,
			"maximum_stake":                    pool.MaximumStake,
			"lock_period_days":                 pool.LockPeriodDays,
			"early_withdrawal_penalty_percent": pool.EarlyWithdrawalPenaltyPercent,
			"risk_level":                       pool.RiskLevel,
			"is_active":                        pool.IsActive,
			"updated_at":                       now,
		},
		"$setOnInsert": bson.M{
			"total_staked":    decimal.Zero,
			"available_slots": pool.AvailableSlots,
			"created_at":      now,
		},
	}

	_, err := db.collection(model.StakingPoolsCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *Database) GetStakingPool(ctx context.Context, poolID string) (*model.StakingPoolDocument, error) {
	filter := bson.M{"_id": poolID}

	var pool model.StakingPoolDocument
	err := db.collection(model.StakingPoolsCollection).FindOne(ctx, filter).Decode(&pool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "staking pool not found",
			}
		}
		return nil, err
	}

	return &pool, nil
}

// GetActiveStakingPools returns active pools in storage order, callers sort.
func (db *Database) GetActiveStakingPools(ctx context.Context) ([]*model.StakingPoolDocument, error) {
	cursor, err := db.collection(model.StakingPoolsCollection).Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pools []*model.StakingPoolDocument
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, err
	}

	return pools, nil
}

func (db *Database) ReserveCapacity(ctx context.Context, poolID string, amount decimal.Decimal) error {
	pool, err := db.GetStakingPool(ctx, poolID)
	if err != nil {
		return err
	}
	if reason := pool.CheckStake(amount); reason != nil {
		return &CapacityError{PoolID: poolID, Reason: reason}
	}

	filter := bson.M{
		"_id":       poolID,
		"is_active": true,
	}
	inc := bson.M{"total_staked": amount}
	if pool.HasFiniteSlots() {
		// the guard and the decrement are one server-side operation
		filter["available_slots"] = bson.M{"$gte": 1}
		inc["available_slots"] = -1
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := db.collection(model.StakingPoolsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		reason := types.ErrPoolInactive
		if pool.HasFiniteSlots() {
			reason = types.ErrNoSlots
		}
		return &CapacityError{PoolID: poolID, Reason: reason}
	}

	return nil
}

func (db *Database) ReleaseCapacity(
	ctx context.Context, poolID string, amount decimal.Decimal, releaseSlot bool,
) error {
	pool, err := db.GetStakingPool(ctx, poolID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id":          poolID,
		"total_staked": bson.M{"$gte": amount},
	}
	inc := bson.M{"total_staked": amount.Neg()}
	if releaseSlot && pool.HasFiniteSlots() {
		inc["available_slots"] = 1
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := db.collection(model.StakingPoolsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("releasing %s from pool %s would make total staked negative", amount, poolID)
	}

	return nil
}

func (db *Database) AddCompoundedStake(ctx context.Context, poolID string, amount decimal.Decimal) error {
	filter := bson.M{"_id": poolID}
	update := bson.M{
		"$inc": bson.M{"total_staked": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := db.collection(model.StakingPoolsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     poolID,
			Message: "staking pool not found when compounding stake",
		}
	}

	return nil
}
