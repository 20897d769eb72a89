package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/types"
)

// toServiceError maps store and ledger failures onto typed errors. It returns
// nil for a nil err.
func toServiceError(err error) *types.Error {
	if err == nil {
		return nil
	}
	if typed := types.AsError(err); typed != nil {
		return typed
	}

	var capacityErr *db.CapacityError
	switch {
	case errors.As(err, &capacityErr):
		return types.NewCapacityError(capacityErr.Reason)
	case db.IsConflictError(err):
		return types.NewError(http.StatusConflict, types.ConcurrencyConflict, err)
	case db.IsPositionClosedError(err):
		return types.NewError(http.StatusConflict, types.PositionClosed, err)
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case errors.Is(err, ledger.ErrInsufficientBalance), db.IsInsufficientBalanceError(err):
		return types.NewError(http.StatusUnprocessableEntity, types.InsufficientBalance, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return types.NewInternalServiceError(fmt.Errorf("operation cancelled before commit: %w", err))
	}

	return types.NewInternalServiceError(err)
}

func positionNotFound(positionID string) *types.Error {
	return types.NewNotFoundError("stake position %s not found", positionID)
}

func positionClosed(positionID string) *types.Error {
	return types.NewErrorWithMsg(
		http.StatusConflict, types.PositionClosed,
		fmt.Sprintf("stake position %s is closed", positionID),
	)
}
