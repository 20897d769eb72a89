package db

import (
	"context"
	"errors"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (db *Database) SaveRequest(ctx context.Context, request *model.RequestDocument) error {
	_, err := db.collection(model.RequestsCollection).InsertOne(ctx, request)
	if err != nil {
		return duplicateKeyError(err, request.RequestID, "request already processed")
	}
	return nil
}

func (db *Database) GetRequest(ctx context.Context, requestID string) (*model.RequestDocument, error) {
	var request model.RequestDocument
	err := db.collection(model.RequestsCollection).
		FindOne(ctx, bson.M{"_id": requestID}).
		Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     requestID,
				Message: "request not found",
			}
		}
		return nil, err
	}

	return &request, nil
}
