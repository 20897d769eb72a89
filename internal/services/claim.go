package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ClaimRequest struct {
	RequestID  string
	OwnerID    string
	PositionID string
}

type ClaimResult struct {
	PositionID string          `json:"position_id"`
	Amount     decimal.Decimal `json:"amount"`
	Compounded bool            `json:"compounded"`
	Replayed   bool            `json:"replayed"`
}

// Claim settles the pending yield of a position. Auto restaking positions
// compound it, the others credit it to the owner balance.
func (s *Service) Claim(ctx context.Context, req ClaimRequest) (*ClaimResult, error) {
	if req.OwnerID == "" || req.PositionID == "" {
		return nil, types.NewValidationError("owner id and position id are required")
	}
	requestID := requestIDOrNew(req.RequestID)

	var result *ClaimResult
	err := s.runUnit(ctx, types.OperationClaim, func(ctx context.Context, u *unit) error {
		stored, err := s.storedRequest(ctx, requestID, types.OperationClaim, req.OwnerID)
		if err != nil {
			return err
		}
		if stored != nil {
			result = &ClaimResult{
				PositionID: stored.PositionID,
				Amount:     stored.Amount,
				Compounded: stored.Compounded,
				Replayed:   true,
			}
			return nil
		}

		position, err := s.ownedActivePosition(ctx, req.OwnerID, req.PositionID)
		if err != nil {
			return err
		}
		result, err = s.claim(ctx, u, requestID, position, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("position_id", result.PositionID).
		Stringer("amount", result.Amount).
		Bool("compounded", result.Compounded).
		Bool("replayed", result.Replayed).
		Msg("claim committed")

	return result, nil
}

// claim must run inside a unit of work.
func (s *Service) claim(
	ctx context.Context, u *unit, requestID string, position *model.StakePositionDocument, now time.Time,
) (*ClaimResult, error) {
	pool, err := s.db.GetStakingPool(ctx, position.PoolID)
	if err != nil {
		return nil, err
	}

	pending := accrual.Pending(
		position.AmountStaked, pool.YieldRateAnnualPercent, position.RewardsEarned, position.StakeDate, now,
	)
	if !pending.IsPositive() {
		return nil, types.NewErrorWithMsg(
			http.StatusUnprocessableEntity, types.NoRewards, "no rewards to claim for position "+position.ID,
		)
	}

	recorded, err := s.db.ClaimRewardRecords(ctx, position.ID, now)
	if err != nil {
		return nil, err
	}
	// the claimed records of a position always add up to its rewards_earned,
	// so the remainder is recorded too. Daily records of a principal that was
	// partially withdrawn can exceed pending, that excess is an adjustment.
	if remainder := pending.Sub(recorded); !remainder.IsZero() {
		rewardType := types.RewardTypeClaim
		if remainder.IsNegative() {
			rewardType = types.RewardTypeAdjustment
		}
		claimedAt := now
		if err := s.db.SaveRewardRecord(ctx, &model.RewardRecordDocument{
			ID:              uuid.NewString(),
			StakePositionID: position.ID,
			OwnerID:         position.OwnerID,
			RewardAmount:    remainder,
			RewardType:      rewardType,
			CalculatedAt:    now,
			IsClaimed:       true,
			ClaimedAt:       &claimedAt,
		}); err != nil {
			return nil, err
		}
	}

	compound := position.AutoRestake
	if err := s.db.ApplyPositionClaim(ctx, position.ID, position.Version, pending, compound, now); err != nil {
		return nil, err
	}
	if compound {
		if err := s.db.AddCompoundedStake(ctx, position.PoolID, pending); err != nil {
			return nil, err
		}
	} else if err := s.credit(ctx, u, position.OwnerID, pending); err != nil {
		return nil, err
	}

	if err := s.db.SaveRequest(ctx, &model.RequestDocument{
		RequestID:  requestID,
		Operation:  types.OperationClaim,
		OwnerID:    position.OwnerID,
		PositionID: position.ID,
		Amount:     pending,
		Penalty:    decimal.Zero,
		Net:        pending,
		Compounded: compound,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	u.onCommit(s.publishFunc(&queue.PositionEvent{
		EventType:  queue.PositionClaimedEvent,
		RequestID:  requestID,
		PositionID: position.ID,
		OwnerID:    position.OwnerID,
		PoolID:     position.PoolID,
		Amount:     pending,
		Penalty:    decimal.Zero,
		Compounded: compound,
		OccurredAt: now,
	}))

	return &ClaimResult{
		PositionID: position.ID,
		Amount:     pending,
		Compounded: compound,
	}, nil
}

// ownedActivePosition hides positions of other owners behind NotFound.
func (s *Service) ownedActivePosition(
	ctx context.Context, ownerID, positionID string,
) (*model.StakePositionDocument, error) {
	position, err := s.db.GetStakePosition(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if position.OwnerID != ownerID {
		return nil, positionNotFound(positionID)
	}
	if !position.IsActive {
		return nil, positionClosed(positionID)
	}
	return position, nil
}
