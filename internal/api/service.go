package api

import (
	"context"

	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/services"
)

// StakingService is the part of services.Service served over http.
type StakingService interface {
	Ping(ctx context.Context) error
	GetPoolCatalog(ctx context.Context) ([]*model.StakingPoolDocument, error)
	GetPositions(ctx context.Context, ownerID string, includeClosed bool) ([]*services.PositionView, error)
	GetPendingRewards(ctx context.Context, ownerID, positionID string) (*services.PendingRewards, error)
	GetRewardHistory(ctx context.Context, ownerID, positionID string) ([]*services.RewardHistoryEntry, error)
	GetStakingStats(ctx context.Context, ownerID string) (*services.StakingStats, error)
	GetAutoStakingConfig(ctx context.Context, ownerID string) (*model.AutoStakingConfigDocument, error)
	UpsertAutoStakingConfig(
		ctx context.Context, ownerID string, update services.AutoStakingConfigUpdate,
	) (*model.AutoStakingConfigDocument, error)
	Stake(ctx context.Context, req services.StakeRequest) (*services.StakeResult, error)
	Claim(ctx context.Context, req services.ClaimRequest) (*services.ClaimResult, error)
	Unstake(ctx context.Context, req services.UnstakeRequest) (*services.UnstakeResult, error)
	RouteReward(ctx context.Context, event *queue.RewardEarnedEvent) (*services.RoutingDecision, error)
}

var _ StakingService = (*services.Service)(nil)
