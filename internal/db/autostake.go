package db

import (
	"context"
	"errors"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetAutoStakingConfig(
	ctx context.Context, ownerID string,
) (*model.AutoStakingConfigDocument, error) {
	var cfg model.AutoStakingConfigDocument
	err := db.collection(model.AutoStakingConfigsCollection).
		FindOne(ctx, bson.M{"_id": ownerID}).
		Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     ownerID,
				Message: "auto staking config not found",
			}
		}
		return nil, err
	}

	return &cfg, nil
}

func (db *Database) UpsertAutoStakingConfig(ctx context.Context, cfg *model.AutoStakingConfigDocument) error {
	filter := bson.M{"_id": cfg.OwnerID}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.AutoStakingConfigsCollection).ReplaceOne(ctx, filter, cfg, opts)
	return err
}
