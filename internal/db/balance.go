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

// GetBalance returns zero for owners that never had a balance.
func (db *Database) GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var doc model.BalanceDocument
	err := db.collection(model.BalancesCollection).
		FindOne(ctx, bson.M{"_id": ownerID}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return doc.Balance, nil
}

func (db *Database) DebitBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	filter := bson.M{
		"_id":     ownerID,
		"balance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"balance": amount.Neg()},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := db.collection(model.BalancesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &InsufficientBalanceError{OwnerID: ownerID}
	}

	return nil
}

func (db *Database) CreditBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	update := bson.M{
		"$inc": bson.M{"balance": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.BalancesCollection).UpdateOne(ctx, bson.M{"_id": ownerID}, update, opts)
	return err
}
