package services

import (
	"context"

	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AutoStakingConfigUpdate is a partial update, nil fields keep their value.
type AutoStakingConfigUpdate struct {
	IsEnabled          *bool            `json:"is_enabled"`
	DefaultPoolID      *string          `json:"default_pool_id"`
	MinimumAutoStake   *decimal.Decimal `json:"minimum_auto_stake"`
	PercentageToStake  *decimal.Decimal `json:"percentage_to_stake"`
	PreferredRiskLevel *types.RiskLevel `json:"preferred_risk_level"`
	AutoCompound       *bool            `json:"auto_compound"`
}

// Skip reasons of RoutingDecision.
const (
	SkipNoConfig       = "no_config"
	SkipDisabled       = "disabled"
	SkipBelowMinimum   = "below_minimum"
	SkipScaledTooLow   = "scaled_below_minimum"
	SkipNoMatchingPool = "no_matching_pool"
)

type RoutingDecision struct {
	Staked     bool            `json:"staked"`
	Amount     decimal.Decimal `json:"amount"`
	PositionID string          `json:"position_id,omitempty"`
	PoolID     string          `json:"pool_id,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

func (s *Service) GetAutoStakingConfig(ctx context.Context, ownerID string) (*model.AutoStakingConfigDocument, error) {
	cfg, err := s.db.GetAutoStakingConfig(ctx, ownerID)
	if err != nil {
		return nil, toServiceError(err)
	}
	return cfg, nil
}

func (s *Service) UpsertAutoStakingConfig(
	ctx context.Context, ownerID string, update AutoStakingConfigUpdate,
) (*model.AutoStakingConfigDocument, error) {
	if ownerID == "" {
		return nil, types.NewValidationError("owner id is required")
	}

	cfg, err := s.db.GetAutoStakingConfig(ctx, ownerID)
	if db.IsNotFoundError(err) {
		cfg = &model.AutoStakingConfigDocument{
			OwnerID:           ownerID,
			MinimumAutoStake:  decimal.Zero,
			PercentageToStake: decimal.Zero,
		}
	} else if err != nil {
		return nil, toServiceError(err)
	}

	applyAutoStakingUpdate(cfg, update)
	if err := s.validateAutoStakingConfig(ctx, cfg); err != nil {
		return nil, err
	}
	cfg.UpdatedAt = s.now()

	if err := s.db.UpsertAutoStakingConfig(ctx, cfg); err != nil {
		return nil, toServiceError(err)
	}

	return cfg, nil
}

func applyAutoStakingUpdate(cfg *model.AutoStakingConfigDocument, update AutoStakingConfigUpdate) {
	if update.IsEnabled != nil {
		cfg.IsEnabled = *update.IsEnabled
	}
	if update.DefaultPoolID != nil {
		cfg.DefaultPoolID = *update.DefaultPoolID
	}
	if update.MinimumAutoStake != nil {
		cfg.MinimumAutoStake = *update.MinimumAutoStake
	}
	if update.PercentageToStake != nil {
		cfg.PercentageToStake = *update.PercentageToStake
	}
	if update.PreferredRiskLevel != nil {
		cfg.PreferredRiskLevel = *update.PreferredRiskLevel
	}
	if update.AutoCompound != nil {
		cfg.AutoCompound = *update.AutoCompound
	}
}

func (s *Service) validateAutoStakingConfig(ctx context.Context, cfg *model.AutoStakingConfigDocument) error {
	if cfg.PercentageToStake.IsNegative() || cfg.PercentageToStake.GreaterThan(hundredPercent) {
		return types.NewValidationError("percentage to stake must be within [0, 100], got %s", cfg.PercentageToStake)
	}
	if cfg.MinimumAutoStake.IsNegative() {
		return types.NewValidationError("minimum auto stake must not be negative, got %s", cfg.MinimumAutoStake)
	}
	if !cfg.PreferredRiskLevel.Valid() {
		return types.NewValidationError("unknown risk level %q", cfg.PreferredRiskLevel)
	}
	if cfg.DefaultPoolID == "" {
		return nil
	}

	pool, err := s.db.GetStakingPool(ctx, cfg.DefaultPoolID)
	if db.IsNotFoundError(err) {
		return types.NewValidationError("default pool %s does not exist", cfg.DefaultPoolID)
	}
	if err != nil {
		return toServiceError(err)
	}
	if !pool.IsActive {
		return types.NewValidationError("default pool %s is not active", cfg.DefaultPoolID)
	}

	return nil
}

// RouteReward diverts a share of an earned reward into a stake position
// according to the owner auto staking config.
func (s *Service) RouteReward(ctx context.Context, event *queue.RewardEarnedEvent) (*RoutingDecision, error) {
	if err := event.Validate(); err != nil {
		return nil, types.NewValidationError("invalid reward event: %v", err)
	}
	log := log.Ctx(ctx).With().
		Str("owner_id", event.OwnerID).
		Str("request_id", event.RequestID).
		Logger()

	cfg, err := s.db.GetAutoStakingConfig(ctx, event.OwnerID)
	if db.IsNotFoundError(err) {
		return skipped(SkipNoConfig), nil
	}
	if err != nil {
		return nil, toServiceError(err)
	}
	if !cfg.IsEnabled {
		return skipped(SkipDisabled), nil
	}
	if event.Amount.LessThan(cfg.MinimumAutoStake) {
		return skipped(SkipBelowMinimum), nil
	}

	amountToStake := accrual.Percentage(event.Amount, cfg.PercentageToStake)
	// the scaled amount is skipped, not raised to the minimum
	if amountToStake.LessThan(cfg.MinimumAutoStake) || !amountToStake.IsPositive() {
		log.Debug().Stringer("amount", amountToStake).Msg("scaled reward below auto stake minimum")
		return skipped(SkipScaledTooLow), nil
	}

	poolID, err := s.routingPool(ctx, cfg, amountToStake)
	if err != nil {
		return nil, err
	}
	if poolID == "" {
		return skipped(SkipNoMatchingPool), nil
	}

	result, err := s.Stake(ctx, StakeRequest{
		RequestID:   event.RequestID,
		OwnerID:     event.OwnerID,
		PoolID:      poolID,
		Amount:      amountToStake,
		AutoRestake: cfg.AutoCompound,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("position_id", result.PositionID).
		Stringer("amount", amountToStake).
		Msg("reward auto staked")

	return &RoutingDecision{
		Staked:     true,
		Amount:     amountToStake,
		PositionID: result.PositionID,
		PoolID:     result.PoolID,
	}, nil
}

// routingPool returns the default pool, or when unset the first pool of the
// catalog that accepts amount and matches the preferred risk level.
func (s *Service) routingPool(
	ctx context.Context, cfg *model.AutoStakingConfigDocument, amount decimal.Decimal,
) (string, error) {
	if cfg.DefaultPoolID != "" {
		return cfg.DefaultPoolID, nil
	}

	pools, err := s.ListActivePools(ctx)
	if err != nil {
		return "", err
	}
	for _, pool := range pools {
		if cfg.PreferredRiskLevel != "" && pool.RiskLevel != cfg.PreferredRiskLevel {
			continue
		}
		if pool.CheckStake(amount) != nil {
			continue
		}
		if pool.HasFiniteSlots() && *pool.AvailableSlots < 1 {
			continue
		}
		return pool.ID, nil
	}

	return "", nil
}

// HandleRewardEvent adapts RouteReward to the queue consumer.
func (s *Service) HandleRewardEvent(ctx context.Context, event *queue.RewardEarnedEvent) error {
	_, err := s.RouteReward(ctx, event)
	return err
}

func skipped(reason string) *RoutingDecision {
	return &RoutingDecision{Amount: decimal.Zero, Reason: reason}
}
