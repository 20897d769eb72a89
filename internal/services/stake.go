package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type StakeRequest struct {
	RequestID   string
	OwnerID     string
	PoolID      string
	Amount      decimal.Decimal
	AutoRestake bool
}

type StakeResult struct {
	PositionID string          `json:"position_id"`
	PoolID     string          `json:"pool_id"`
	Amount     decimal.Decimal `json:"amount"`
	UnlockDate time.Time       `json:"unlock_date"`
	// Replayed is set when the request id was already processed
	Replayed bool `json:"replayed"`
}

// Stake debits the owner, reserves pool capacity and opens a position as one
// atomic unit.
func (s *Service) Stake(ctx context.Context, req StakeRequest) (*StakeResult, error) {
	if req.OwnerID == "" {
		return nil, types.NewValidationError("owner id is required")
	}
	if req.PoolID == "" {
		return nil, types.NewValidationError("pool id is required")
	}
	if err := validateAmount("stake amount", req.Amount); err != nil {
		return nil, err
	}
	requestID := requestIDOrNew(req.RequestID)

	var result *StakeResult
	err := s.runUnit(ctx, types.OperationStake, func(ctx context.Context, u *unit) error {
		stored, err := s.storedRequest(ctx, requestID, types.OperationStake, req.OwnerID)
		if err != nil {
			return err
		}
		if stored != nil {
			result, err = s.replayStake(ctx, stored)
			return err
		}

		result, err = s.stake(ctx, u, requestID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("position_id", result.PositionID).
		Str("pool_id", result.PoolID).
		Stringer("amount", result.Amount).
		Bool("replayed", result.Replayed).
		Msg("stake committed")

	return result, nil
}

func (s *Service) stake(ctx context.Context, u *unit, requestID string, req StakeRequest) (*StakeResult, error) {
	pool, err := s.db.GetStakingPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}
	// fail fast before the ledger is touched
	if reason := pool.CheckStake(req.Amount); reason != nil {
		return nil, types.NewCapacityError(reason)
	}

	if err := s.debit(ctx, u, req.OwnerID, req.Amount); err != nil {
		return nil, err
	}
	if err := s.db.ReserveCapacity(ctx, pool.ID, req.Amount); err != nil {
		return nil, err
	}

	now := s.now()
	position := &model.StakePositionDocument{
		ID:             uuid.NewString(),
		OwnerID:        req.OwnerID,
		PoolID:         pool.ID,
		AmountStaked:   req.Amount,
		RewardsEarned:  decimal.Zero,
		RewardsAccrued: decimal.Zero,
		StakeDate:      now,
		UnlockDate:     unlockDate(pool, now),
		IsActive:       true,
		AutoRestake:    req.AutoRestake,
	}
	if err := s.db.SaveNewStakePosition(ctx, position); err != nil {
		return nil, err
	}

	if err := s.db.SaveRequest(ctx, &model.RequestDocument{
		RequestID:  requestID,
		Operation:  types.OperationStake,
		OwnerID:    req.OwnerID,
		PositionID: position.ID,
		Amount:     req.Amount,
		Penalty:    decimal.Zero,
		Net:        req.Amount,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	u.onCommit(s.publishFunc(&queue.PositionEvent{
		EventType:  queue.PositionStakedEvent,
		RequestID:  requestID,
		PositionID: position.ID,
		OwnerID:    position.OwnerID,
		PoolID:     position.PoolID,
		Amount:     position.AmountStaked,
		Penalty:    decimal.Zero,
		OccurredAt: now,
	}))

	return &StakeResult{
		PositionID: position.ID,
		PoolID:     position.PoolID,
		Amount:     position.AmountStaked,
		UnlockDate: position.UnlockDate,
	}, nil
}

func (s *Service) replayStake(ctx context.Context, stored *model.RequestDocument) (*StakeResult, error) {
	position, err := s.db.GetStakePosition(ctx, stored.PositionID)
	if err != nil {
		return nil, err
	}

	return &StakeResult{
		PositionID: position.ID,
		PoolID:     position.PoolID,
		Amount:     stored.Amount,
		UnlockDate: position.UnlockDate,
		Replayed:   true,
	}, nil
}
