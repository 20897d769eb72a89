package services

import (
	"context"
	"time"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type PositionView struct {
	ID              string              `json:"id"`
	PoolID          string              `json:"pool_id"`
	State           types.PositionState `json:"state"`
	AmountStaked    decimal.Decimal     `json:"amount_staked"`
	RewardsEarned   decimal.Decimal     `json:"rewards_earned"`
	PendingRewards  decimal.Decimal     `json:"pending_rewards"`
	StakeDate       time.Time           `json:"stake_date"`
	UnlockDate      time.Time           `json:"unlock_date"`
	IsLocked        bool                `json:"is_locked"`
	AutoRestake     bool                `json:"auto_restake"`
	LastRewardClaim *time.Time          `json:"last_reward_claim,omitempty"`
	ClosedAt        *time.Time          `json:"closed_at,omitempty"`
}

type PendingRewards struct {
	PositionID string          `json:"position_id"`
	Pending    decimal.Decimal `json:"pending"`
	AsOf       time.Time       `json:"as_of"`
}

type StakingStats struct {
	TotalStaked         decimal.Decimal `json:"total_staked"`
	TotalClaimed        decimal.Decimal `json:"total_claimed"`
	TotalPending        decimal.Decimal `json:"total_pending"`
	PositionCount       int64           `json:"position_count"`
	ActivePositionCount int64           `json:"active_position_count"`
}

type RewardHistoryEntry struct {
	ID           string           `json:"id"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         types.RewardType `json:"type"`
	CalculatedAt time.Time        `json:"calculated_at"`
	IsClaimed    bool             `json:"is_claimed"`
	ClaimedAt    *time.Time       `json:"claimed_at,omitempty"`
}

// GetPositions returns the positions of ownerID with their pending yield.
// Closed positions are included only when includeClosed is set.
func (s *Service) GetPositions(ctx context.Context, ownerID string, includeClosed bool) ([]*PositionView, error) {
	if ownerID == "" {
		return nil, types.NewValidationError("owner id is required")
	}

	positions, err := s.db.GetStakePositionsByOwner(ctx, ownerID, !includeClosed)
	if err != nil {
		return nil, toServiceError(err)
	}

	now := s.now()
	pools := newPoolCache(s)
	views := make([]*PositionView, 0, len(positions))
	for _, position := range positions {
		pending, err := s.pendingOf(ctx, pools, position, now)
		if err != nil {
			return nil, toServiceError(err)
		}
		views = append(views, &PositionView{
			ID:              position.ID,
			PoolID:          position.PoolID,
			State:           position.State(),
			AmountStaked:    position.AmountStaked,
			RewardsEarned:   position.RewardsEarned,
			PendingRewards:  pending,
			StakeDate:       position.StakeDate,
			UnlockDate:      position.UnlockDate,
			IsLocked:        position.IsActive && position.IsLocked(now),
			AutoRestake:     position.AutoRestake,
			LastRewardClaim: position.LastRewardClaim,
			ClosedAt:        position.ClosedAt,
		})
	}

	return views, nil
}

// GetPendingRewards returns the claimable yield of one position of ownerID.
func (s *Service) GetPendingRewards(ctx context.Context, ownerID, positionID string) (*PendingRewards, error) {
	position, err := s.db.GetStakePosition(ctx, positionID)
	if err != nil {
		return nil, toServiceError(err)
	}
	if position.OwnerID != ownerID {
		return nil, positionNotFound(positionID)
	}

	now := s.now()
	pending, err := s.pendingOf(ctx, newPoolCache(s), position, now)
	if err != nil {
		return nil, toServiceError(err)
	}

	return &PendingRewards{
		PositionID: position.ID,
		Pending:    pending,
		AsOf:       now,
	}, nil
}

// GetPoolCatalog returns the pools open for staking in display order.
func (s *Service) GetPoolCatalog(ctx context.Context) ([]*model.StakingPoolDocument, error) {
	return s.ListActivePools(ctx)
}

func (s *Service) GetStakingStats(ctx context.Context, ownerID string) (*StakingStats, error) {
	if ownerID == "" {
		return nil, types.NewValidationError("owner id is required")
	}

	totals, err := s.db.GetOwnerStakeTotals(ctx, ownerID)
	if err != nil {
		return nil, toServiceError(err)
	}

	positions, err := s.db.GetStakePositionsByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, toServiceError(err)
	}

	now := s.now()
	pools := newPoolCache(s)
	totalPending := decimal.Zero
	for _, position := range positions {
		pending, err := s.pendingOf(ctx, pools, position, now)
		if err != nil {
			return nil, toServiceError(err)
		}
		totalPending = totalPending.Add(pending)
	}

	return &StakingStats{
		TotalStaked:         totals.TotalStaked,
		TotalClaimed:        totals.TotalClaimed,
		TotalPending:        totalPending,
		PositionCount:       totals.PositionCount,
		ActivePositionCount: totals.ActivePositionCount,
	}, nil
}

// GetRewardHistory returns the reward records of a position of ownerID in
// the order they were written.
func (s *Service) GetRewardHistory(ctx context.Context, ownerID, positionID string) ([]*RewardHistoryEntry, error) {
	position, err := s.db.GetStakePosition(ctx, positionID)
	if err != nil {
		return nil, toServiceError(err)
	}
	if position.OwnerID != ownerID {
		return nil, positionNotFound(positionID)
	}

	records, err := s.db.GetRewardRecordsByPosition(ctx, positionID)
	if err != nil {
		return nil, toServiceError(err)
	}

	history := make([]*RewardHistoryEntry, 0, len(records))
	for _, record := range records {
		history = append(history, &RewardHistoryEntry{
			ID:           record.ID,
			Amount:       record.RewardAmount,
			Type:         record.RewardType,
			CalculatedAt: record.CalculatedAt,
			IsClaimed:    record.IsClaimed,
			ClaimedAt:    record.ClaimedAt,
		})
	}
	return history, nil
}

// pendingOf is zero for closed positions, their unclaimed yield was forfeited.
func (s *Service) pendingOf(
	ctx context.Context, pools *poolCache, position *model.StakePositionDocument, now time.Time,
) (decimal.Decimal, error) {
	if !position.IsActive {
		return decimal.Zero, nil
	}
	pool, err := pools.get(ctx, position.PoolID)
	if err != nil {
		return decimal.Zero, err
	}
	return accrual.Pending(
		position.AmountStaked, pool.YieldRateAnnualPercent, position.RewardsEarned, position.StakeDate, now,
	), nil
}
