package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveAccrualFailure(ctx context.Context, positionID, day, reason string) error {
	update := bson.M{
		"$set": bson.M{
			"day":        day,
			"error":      reason,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"attempts": 1},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.AccrualFailuresCollection).
		UpdateOne(ctx, bson.M{"_id": positionID}, update, opts)
	return err
}

func (db *Database) GetAccrualFailures(ctx context.Context, limit int64) ([]*model.AccrualFailureDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.AccrualFailuresCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var failures []*model.AccrualFailureDocument
	if err := cursor.All(ctx, &failures); err != nil {
		return nil, err
	}

	return failures, nil
}

func (db *Database) DeleteAccrualFailure(ctx context.Context, positionID string) error {
	result, err := db.collection(model.AccrualFailuresCollection).DeleteOne(ctx, bson.M{"_id": positionID})
	if err != nil {
		return fmt.Errorf("failed to delete accrual failure of position %v: %w", positionID, err)
	}

	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     positionID,
			Message: "accrual failure not found",
		}
	}

	return nil
}
