package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
)

// requestIDOrNew keeps caller supplied request ids. Requests without one are
// not deduplicated.
func requestIDOrNew(requestID string) string {
	if requestID != "" {
		return requestID
	}
	return uuid.NewString()
}

// storedRequest returns the committed outcome of requestID or nil when the
// request was never processed.
func (s *Service) storedRequest(
	ctx context.Context, requestID string, op types.Operation, ownerID string,
) (*model.RequestDocument, error) {
	request, err := s.db.GetRequest(ctx, requestID)
	if db.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if request.Operation != op || request.OwnerID != ownerID {
		return nil, types.NewValidationError(
			"request id %s was already used by another %s operation", requestID, request.Operation,
		)
	}

	return request, nil
}
