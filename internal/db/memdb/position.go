package memdb

import (
	"context"
	"sort"
	"time"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveNewStakePosition(ctx context.Context, position *model.StakePositionDocument) error {
	defer s.lock(ctx)()

	if _, ok := s.state.positions[position.ID]; ok {
		return &db.DuplicateKeyError{
			Key:     position.ID,
			Message: "stake position already exists",
		}
	}
	remember(s, s.state.positions, position.ID, (*model.StakePositionDocument).Clone)
	s.state.positions[position.ID] = position.Clone()

	return nil
}

func (s *Store) GetStakePosition(ctx context.Context, positionID string) (*model.StakePositionDocument, error) {
	defer s.lock(ctx)()

	position, err := s.position(positionID)
	if err != nil {
		return nil, err
	}
	return position.Clone(), nil
}

func (s *Store) GetStakePositionsByOwner(
	ctx context.Context, ownerID string, activeOnly bool,
) ([]*model.StakePositionDocument, error) {
	defer s.lock(ctx)()

	var positions []*model.StakePositionDocument
	for _, position := range s.state.positions {
		if position.OwnerID != ownerID || (activeOnly && !position.IsActive) {
			continue
		}
		positions = append(positions, position.Clone())
	}
	sort.Slice(positions, func(i, j int) bool {
		if !positions[i].StakeDate.Equal(positions[j].StakeDate) {
			return positions[i].StakeDate.After(positions[j].StakeDate)
		}
		return positions[i].ID < positions[j].ID
	})

	return positions, nil
}

func (s *Store) GetPositionsForAccrual(
	ctx context.Context, day string, afterID string, limit int64,
) ([]*model.StakePositionDocument, error) {
	defer s.lock(ctx)()

	var positions []*model.StakePositionDocument
	for _, position := range s.state.positions {
		if !position.IsActive || position.LastAccrualDay == day || position.ID <= afterID {
			continue
		}
		positions = append(positions, position.Clone())
	}
	sortPositionsByID(positions)
	if limit > 0 && int64(len(positions)) > limit {
		positions = positions[:limit]
	}

	return positions, nil
}

func (s *Store) ApplyPositionClaim(
	ctx context.Context, positionID string, version uint64,
	rewardDelta decimal.Decimal, compound bool, claimedAt time.Time,
) error {
	defer s.lock(ctx)()

	position, err := s.versionedPosition(positionID, version)
	if err != nil {
		return err
	}
	remember(s, s.state.positions, positionID, (*model.StakePositionDocument).Clone)

	position.RewardsEarned = position.RewardsEarned.Add(rewardDelta)
	if compound {
		position.AmountStaked = position.AmountStaked.Add(rewardDelta)
	}
	position.RewardsAccrued = decimal.Max(position.RewardsAccrued, position.RewardsEarned)
	claimed := claimedAt
	position.LastRewardClaim = &claimed
	position.Version++

	return nil
}

func (s *Store) ApplyPositionWithdrawal(
	ctx context.Context, positionID string, version uint64,
	amount decimal.Decimal, withdrawnAt time.Time,
) (*db.WithdrawalOutcome, error) {
	defer s.lock(ctx)()

	position, err := s.versionedPosition(positionID, version)
	if err != nil {
		return nil, err
	}
	if position.AmountStaked.LessThan(amount) {
		return nil, &db.ConflictError{
			Key:     positionID,
			Message: "stake position was modified concurrently",
		}
	}
	remember(s, s.state.positions, positionID, (*model.StakePositionDocument).Clone)

	position.AmountStaked = position.AmountStaked.Sub(amount)
	position.Version++
	if position.AmountStaked.IsPositive() {
		return &db.WithdrawalOutcome{Remaining: position.AmountStaked}, nil
	}

	closedAt := withdrawnAt
	position.IsActive = false
	position.ClosedAt = &closedAt
	position.Version++

	return &db.WithdrawalOutcome{Remaining: decimal.Zero, Closed: true}, nil
}

func (s *Store) ApplyPositionAccrual(
	ctx context.Context, positionID string, version uint64, day string, delta decimal.Decimal,
) error {
	defer s.lock(ctx)()

	position, err := s.versionedPosition(positionID, version)
	if err != nil {
		return err
	}
	remember(s, s.state.positions, positionID, (*model.StakePositionDocument).Clone)
	position.RewardsAccrued = position.RewardsAccrued.Add(delta)
	position.LastAccrualDay = day
	position.Version++

	return nil
}

func (s *Store) GetOwnerStakeTotals(ctx context.Context, ownerID string) (*model.OwnerStakeTotals, error) {
	defer s.lock(ctx)()

	totals := &model.OwnerStakeTotals{
		TotalStaked:  decimal.Zero,
		TotalClaimed: decimal.Zero,
	}
	for _, position := range s.state.positions {
		if position.OwnerID != ownerID {
			continue
		}
		totals.PositionCount++
		totals.TotalClaimed = totals.TotalClaimed.Add(position.RewardsEarned)
		if position.IsActive {
			totals.ActivePositionCount++
			totals.TotalStaked = totals.TotalStaked.Add(position.AmountStaked)
		}
	}

	return totals, nil
}

func (s *Store) CalculateActiveStatsAggregated(ctx context.Context) ([]*model.PoolStats, error) {
	defer s.lock(ctx)()

	byPool := make(map[string]*model.PoolStats)
	for _, position := range s.state.positions {
		if !position.IsActive {
			continue
		}
		stats, ok := byPool[position.PoolID]
		if !ok {
			stats = &model.PoolStats{PoolID: position.PoolID, ActiveStake: decimal.Zero}
			byPool[position.PoolID] = stats
		}
		stats.ActiveStake = stats.ActiveStake.Add(position.AmountStaked)
		stats.ActivePositions++
	}

	result := make([]*model.PoolStats, 0, len(byPool))
	for _, stats := range byPool {
		result = append(result, stats)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PoolID < result[j].PoolID
	})

	return result, nil
}

func (s *Store) position(positionID string) (*model.StakePositionDocument, error) {
	position, ok := s.state.positions[positionID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     positionID,
			Message: "stake position not found",
		}
	}
	return position, nil
}

// versionedPosition mirrors the conditional filter of the mongo store.
func (s *Store) versionedPosition(positionID string, version uint64) (*model.StakePositionDocument, error) {
	position, err := s.position(positionID)
	if err != nil {
		return nil, err
	}
	if !position.IsActive {
		return nil, &db.PositionClosedError{PositionID: positionID}
	}
	if position.Version != version {
		return nil, &db.ConflictError{
			Key:     positionID,
			Message: "stake position was modified concurrently",
		}
	}
	return position, nil
}
