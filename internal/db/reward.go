package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveRewardRecord(ctx context.Context, record *model.RewardRecordDocument) error {
	_, err := db.collection(model.RewardRecordsCollection).InsertOne(ctx, record)
	if err != nil {
		return duplicateKeyError(err, record.ID, "reward record already exists")
	}
	return nil
}

func (db *Database) ClaimRewardRecords(
	ctx context.Context, positionID string, claimedAt time.Time,
) (decimal.Decimal, error) {
	filter := bson.M{
		"stake_position_id": positionID,
		"is_claimed":        false,
	}

	cursor, err := db.collection(model.RewardRecordsCollection).Find(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	defer cursor.Close(ctx)

	var records []*model.RewardRecordDocument
	if err := cursor.All(ctx, &records); err != nil {
		return decimal.Zero, err
	}
	if len(records) == 0 {
		return decimal.Zero, nil
	}

	ids := make([]string, len(records))
	sum := decimal.Zero
	for i, record := range records {
		ids[i] = record.ID
		sum = sum.Add(record.RewardAmount)
	}

	update := bson.M{
		"$set": bson.M{
			"is_claimed": true,
			"claimed_at": claimedAt,
		},
	}
	res, err := db.collection(model.RewardRecordsCollection).UpdateMany(ctx, bson.M{
		"_id":        bson.M{"$in": ids},
		"is_claimed": false,
	}, update)
	if err != nil {
		return decimal.Zero, err
	}
	if res.ModifiedCount != int64(len(ids)) {
		return decimal.Zero, &ConflictError{
			Key:     positionID,
			Message: fmt.Sprintf("claimed %d of %d reward records", res.ModifiedCount, len(ids)),
		}
	}

	return sum, nil
}

func (db *Database) GetRewardRecordsByPosition(
	ctx context.Context, positionID string,
) ([]*model.RewardRecordDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "calculated_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := db.collection(model.RewardRecordsCollection).
		Find(ctx, bson.M{"stake_position_id": positionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.RewardRecordDocument
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (db *Database) SumClaimedRewards(ctx context.Context, positionID string) (decimal.Decimal, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"stake_position_id": positionID,
			"is_claimed":        true,
		}},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$reward_amount"},
		}},
	}

	cursor, err := db.collection(model.RewardRecordsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return decimal.Zero, cursor.Err()
	}

	var result struct {
		Total decimal.Decimal `bson:"total"`
	}
	if err := cursor.Decode(&result); err != nil {
		return decimal.Zero, err
	}

	return result.Total, nil
}
