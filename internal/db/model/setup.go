package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StakingPoolsCollection       = "staking_pools"
	StakePositionsCollection     = "stake_positions"
	RewardRecordsCollection      = "reward_records"
	AutoStakingConfigsCollection = "auto_staking_configs"
	BalancesCollection           = "balances"
	RequestsCollection           = "requests"
	AccrualFailuresCollection    = "accrual_failures"
)

// transactions cannot create collections, so they must exist upfront
const namespaceExistsCode = 48

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	StakingPoolsCollection: {
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	},
	StakePositionsCollection: {
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "last_accrual_day", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "pool_id", Value: 1}}},
	},
	RewardRecordsCollection: {
		{Keys: bson.D{{Key: "stake_position_id", Value: 1}, {Key: "is_claimed", Value: 1}}},
	},
	AutoStakingConfigsCollection: nil,
	BalancesCollection:           nil,
	RequestsCollection: {
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	},
	AccrualFailuresCollection: {
		{Keys: bson.D{{Key: "day", Value: 1}}},
	},
}

// Setup creates missing collections and their indexes. It is idempotent and
// runs at every start of the service.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	for collection, idxs := range collections {
		createCollection(ctx, database, collection)
		for _, idx := range idxs {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	err := database.CreateCollection(ctx, collectionName)
	if err == nil {
		log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection created successfully")
		return
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
		log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection already exists")
		return
	}

	log.Ctx(ctx).Warn().Err(err).Str("collection", collectionName).Msg("Failed to create collection")
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Index created successfully")
	return nil
}
