package db

import (
	"context"
	"errors"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewStakePosition(ctx context.Context, position *model.StakePositionDocument) error {
	_, err := db.collection(model.StakePositionsCollection).InsertOne(ctx, position)
	if err != nil {
		return duplicateKeyError(err, position.ID, "stake position already exists")
	}
	return nil
}

func (db *Database) GetStakePosition(ctx context.Context, positionID string) (*model.StakePositionDocument, error) {
	filter := bson.M{"_id": positionID}

	var position model.StakePositionDocument
	err := db.collection(model.StakePositionsCollection).FindOne(ctx, filter).Decode(&position)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     positionID,
				Message: "stake position not found",
			}
		}
		return nil, err
	}

	return &position, nil
}

func (db *Database) GetStakePositionsByOwner(
	ctx context.Context, ownerID string, activeOnly bool,
) ([]*model.StakePositionDocument, error) {
	filter := bson.M{"owner_id": ownerID}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "stake_date", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := db.collection(model.StakePositionsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var positions []*model.StakePositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (db *Database) GetPositionsForAccrual(
	ctx context.Context, day string, afterID string, limit int64,
) ([]*model.StakePositionDocument, error) {
	filter := bson.M{
		"is_active":        true,
		"last_accrual_day": bson.M{"$ne": day},
	}
	if afterID != "" {
		filter["_id"] = bson.M{"$gt": afterID}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.StakePositionsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var positions []*model.StakePositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (db *Database) ApplyPositionClaim(
	ctx context.Context, positionID string, version uint64,
	rewardDelta decimal.Decimal, compound bool, claimedAt time.Time,
) error {
	set := bson.M{
		"rewards_earned":    bson.M{"$add": bson.A{"$rewards_earned", rewardDelta}},
		"last_reward_claim": claimedAt,
		"version":           bson.M{"$add": bson.A{"$version", 1}},
	}
	if compound {
		set["amount_staked"] = bson.M{"$add": bson.A{"$amount_staked", rewardDelta}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: set}},
		// claimed yield counts as materialized so the driver never records it again
		{{Key: "$set", Value: bson.M{
			"rewards_accrued": bson.M{"$max": bson.A{"$rewards_accrued", "$rewards_earned"}},
		}}},
	}

	res, err := db.collection(model.StakePositionsCollection).
		UpdateOne(ctx, positionVersionFilter(positionID, version), pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return db.positionMismatch(ctx, positionID)
	}

	return nil
}

func (db *Database) ApplyPositionWithdrawal(
	ctx context.Context, positionID string, version uint64,
	amount decimal.Decimal, withdrawnAt time.Time,
) (*WithdrawalOutcome, error) {
	filter := positionVersionFilter(positionID, version)
	filter["amount_staked"] = bson.M{"$gte": amount}
	update := bson.M{
		"$inc": bson.M{
			"amount_staked": amount.Neg(),
			"version":       1,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var position model.StakePositionDocument
	err := db.collection(model.StakePositionsCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&position)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, db.positionMismatch(ctx, positionID)
		}
		return nil, err
	}

	if position.AmountStaked.IsPositive() {
		return &WithdrawalOutcome{Remaining: position.AmountStaked}, nil
	}

	closeUpdate := bson.M{
		"$set": bson.M{
			"is_active": false,
			"closed_at": withdrawnAt,
		},
		"$inc": bson.M{"version": 1},
	}
	_, err = db.collection(model.StakePositionsCollection).
		UpdateOne(ctx, positionVersionFilter(positionID, position.Version), closeUpdate)
	if err != nil {
		return nil, err
	}

	return &WithdrawalOutcome{Remaining: decimal.Zero, Closed: true}, nil
}

func (db *Database) ApplyPositionAccrual(
	ctx context.Context, positionID string, version uint64, day string, delta decimal.Decimal,
) error {
	update := bson.M{
		"$inc": bson.M{
			"rewards_accrued": delta,
			"version":         1,
		},
		"$set": bson.M{"last_accrual_day": day},
	}

	res, err := db.collection(model.StakePositionsCollection).
		UpdateOne(ctx, positionVersionFilter(positionID, version), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return db.positionMismatch(ctx, positionID)
	}

	return nil
}

func (db *Database) GetOwnerStakeTotals(ctx context.Context, ownerID string) (*model.OwnerStakeTotals, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"owner_id": ownerID}},
		bson.M{
			"$group": bson.M{
				"_id": nil,
				"total_staked": bson.M{"$sum": bson.M{
					"$cond": bson.A{"$is_active", "$amount_staked", 0},
				}},
				"total_claimed":  bson.M{"$sum": "$rewards_earned"},
				"position_count": bson.M{"$sum": 1},
				"active_position_count": bson.M{"$sum": bson.M{
					"$cond": bson.A{"$is_active", 1, 0},
				}},
			},
		},
	}

	cursor, err := db.collection(model.StakePositionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	totals := &model.OwnerStakeTotals{
		TotalStaked:  decimal.Zero,
		TotalClaimed: decimal.Zero,
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(totals); err != nil {
			return nil, err
		}
	}

	return totals, cursor.Err()
}

// CalculateActiveStatsAggregated calculates per pool stats using MongoDB
// aggregation pipeline instead of loading positions into memory
func (db *Database) CalculateActiveStatsAggregated(ctx context.Context) ([]*model.PoolStats, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"is_active": true}},
		bson.M{
			"$group": bson.M{
				"_id":              "$pool_id",
				"active_stake":     bson.M{"$sum": "$amount_staked"},
				"active_positions": bson.M{"$sum": 1},
			},
		},
		bson.M{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := db.collection(model.StakePositionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []*model.PoolStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func positionVersionFilter(positionID string, version uint64) bson.M {
	return bson.M{
		"_id":       positionID,
		"is_active": true,
		"version":   version,
	}
}

// positionMismatch explains why a conditional position update matched nothing.
func (db *Database) positionMismatch(ctx context.Context, positionID string) error {
	position, err := db.GetStakePosition(ctx, positionID)
	if err != nil {
		return err
	}
	if !position.IsActive {
		return &PositionClosedError{PositionID: positionID}
	}
	return &ConflictError{
		Key:     positionID,
		Message: "stake position was modified concurrently",
	}
}
