package db

import (
	"context"
	"errors"

	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const transientTransactionLabel = "TransientTransactionError"

type txMarker struct{}

type Database struct {
	dbName string
	client *mongo.Client
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	clientOps := options.Client().
		ApplyURI(cfg.Address).
		SetRegistry(model.Registry())
	if cfg.Username != "" {
		clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		dbName: cfg.DbName,
		client: client,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

func (db *Database) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

func (db *Database) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	err = mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
		if err := session.StartTransaction(txnOpts); err != nil {
			return err
		}

		if err := fn(context.WithValue(sessCtx, txMarker{}, true)); err != nil {
			if abortErr := session.AbortTransaction(context.WithoutCancel(sessCtx)); abortErr != nil {
				log.Ctx(ctx).Warn().Err(abortErr).Msg("failed to abort transaction")
			}
			return err
		}

		return session.CommitTransaction(sessCtx)
	})
	if err != nil && isTransientTransactionError(err) {
		return &ConflictError{
			Message: "transaction write conflict",
			Err:     err,
		}
	}

	return err
}

func inTransaction(ctx context.Context) bool {
	marked, _ := ctx.Value(txMarker{}).(bool)
	return marked
}

func isTransientTransactionError(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel(transientTransactionLabel)
	}
	return false
}

func duplicateKeyError(err error, key, message string) error {
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     key,
			Message: message,
		}
	}
	return err
}
