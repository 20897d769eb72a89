package services

import (
	"context"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type UnstakeRequest struct {
	RequestID  string
	OwnerID    string
	PositionID string
	// Amount is the principal to withdraw, nil withdraws everything
	Amount *decimal.Decimal
}

type UnstakeResult struct {
	PositionID string          `json:"position_id"`
	Amount     decimal.Decimal `json:"amount"`
	Penalty    decimal.Decimal `json:"penalty"`
	Net        decimal.Decimal `json:"net"`
	Closed     bool            `json:"closed"`
	Replayed   bool            `json:"replayed"`
}

// Unstake withdraws principal from a position. Withdrawals before the unlock
// date pay the pool penalty, which is burned.
func (s *Service) Unstake(ctx context.Context, req UnstakeRequest) (*UnstakeResult, error) {
	if req.OwnerID == "" || req.PositionID == "" {
		return nil, types.NewValidationError("owner id and position id are required")
	}
	if req.Amount != nil {
		if err := validateAmount("unstake amount", *req.Amount); err != nil {
			return nil, err
		}
	}
	requestID := requestIDOrNew(req.RequestID)

	var result *UnstakeResult
	err := s.runUnit(ctx, types.OperationUnstake, func(ctx context.Context, u *unit) error {
		stored, err := s.storedRequest(ctx, requestID, types.OperationUnstake, req.OwnerID)
		if err != nil {
			return err
		}
		if stored != nil {
			result = &UnstakeResult{
				PositionID: stored.PositionID,
				Amount:     stored.Amount,
				Penalty:    stored.Penalty,
				Net:        stored.Net,
				Closed:     stored.Closed,
				Replayed:   true,
			}
			return nil
		}

		position, err := s.ownedActivePosition(ctx, req.OwnerID, req.PositionID)
		if err != nil {
			return err
		}
		result, err = s.unstake(ctx, u, requestID, position, req.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("position_id", result.PositionID).
		Stringer("amount", result.Amount).
		Stringer("penalty", result.Penalty).
		Bool("closed", result.Closed).
		Bool("replayed", result.Replayed).
		Msg("unstake committed")

	return result, nil
}

func (s *Service) unstake(
	ctx context.Context, u *unit, requestID string,
	position *model.StakePositionDocument, requested *decimal.Decimal,
) (*UnstakeResult, error) {
	amount := position.AmountStaked
	if requested != nil {
		amount = *requested
	}
	if amount.GreaterThan(position.AmountStaked) {
		return nil, types.NewValidationError(
			"unstake amount %s exceeds staked amount %s", amount, position.AmountStaked,
		)
	}

	pool, err := s.db.GetStakingPool(ctx, position.PoolID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	penalty := decimal.Zero
	if position.IsLocked(now) {
		penalty = accrual.Penalty(amount, pool.EarlyWithdrawalPenaltyPercent)
	}
	net := amount.Sub(penalty)

	outcome, err := s.db.ApplyPositionWithdrawal(ctx, position.ID, position.Version, amount, now)
	if err != nil {
		return nil, err
	}
	// a slot limits concurrent positions, so only a closed position frees one
	if err := s.db.ReleaseCapacity(ctx, pool.ID, amount, outcome.Closed); err != nil {
		return nil, err
	}
	if net.IsPositive() {
		if err := s.credit(ctx, u, position.OwnerID, net); err != nil {
			return nil, err
		}
	}

	if err := s.db.SaveRequest(ctx, &model.RequestDocument{
		RequestID:  requestID,
		Operation:  types.OperationUnstake,
		OwnerID:    position.OwnerID,
		PositionID: position.ID,
		Amount:     amount,
		Penalty:    penalty,
		Net:        net,
		Closed:     outcome.Closed,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	u.onCommit(s.publishFunc(&queue.PositionEvent{
		EventType:  queue.PositionUnstakedEvent,
		RequestID:  requestID,
		PositionID: position.ID,
		OwnerID:    position.OwnerID,
		PoolID:     position.PoolID,
		Amount:     amount,
		Penalty:    penalty,
		Closed:     outcome.Closed,
		OccurredAt: now,
	}))

	return &UnstakeResult{
		PositionID: position.ID,
		Amount:     amount,
		Penalty:    penalty,
		Net:        net,
		Closed:     outcome.Closed,
	}, nil
}
