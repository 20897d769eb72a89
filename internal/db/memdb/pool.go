package memdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

func (s *Store) UpsertStakingPool(ctx context.Context, pool *model.StakingPoolDocument) error {
	defer s.lock(ctx)()

	ts := now()
	stored := clonePool(pool)
	stored.UpdatedAt = ts
	if existing, ok := s.state.pools[pool.ID]; ok {
		stored.TotalStaked = existing.TotalStaked
		stored.AvailableSlots = existing.AvailableSlots
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.TotalStaked = decimal.Zero
		stored.CreatedAt = ts
	}
	remember(s, s.state.pools, pool.ID, clonePool)
	s.state.pools[pool.ID] = stored

	return nil
}

func (s *Store) GetStakingPool(ctx context.Context, poolID string) (*model.StakingPoolDocument, error) {
	defer s.lock(ctx)()

	pool, err := s.pool(poolID)
	if err != nil {
		return nil, err
	}
	return clonePool(pool), nil
}

func (s *Store) GetActiveStakingPools(ctx context.Context) ([]*model.StakingPoolDocument, error) {
	defer s.lock(ctx)()

	var pools []*model.StakingPoolDocument
	for _, pool := range s.state.pools {
		if pool.IsActive {
			pools = append(pools, clonePool(pool))
		}
	}
	sort.Slice(pools, func(i, j int) bool {
		return pools[i].ID < pools[j].ID
	})

	return pools, nil
}

func (s *Store) ReserveCapacity(ctx context.Context, poolID string, amount decimal.Decimal) error {
	defer s.lock(ctx)()

	pool, err := s.pool(poolID)
	if err != nil {
		return err
	}
	if reason := pool.CheckStake(amount); reason != nil {
		return &db.CapacityError{PoolID: poolID, Reason: reason}
	}
	if pool.HasFiniteSlots() && *pool.AvailableSlots < 1 {
		return &db.CapacityError{PoolID: poolID, Reason: types.ErrNoSlots}
	}

	remember(s, s.state.pools, poolID, clonePool)
	if pool.HasFiniteSlots() {
		*pool.AvailableSlots--
	}
	pool.TotalStaked = pool.TotalStaked.Add(amount)
	pool.UpdatedAt = now()

	return nil
}

func (s *Store) ReleaseCapacity(
	ctx context.Context, poolID string, amount decimal.Decimal, releaseSlot bool,
) error {
	defer s.lock(ctx)()

	pool, err := s.pool(poolID)
	if err != nil {
		return err
	}
	if pool.TotalStaked.LessThan(amount) {
		return fmt.Errorf("releasing %s from pool %s would make total staked negative", amount, poolID)
	}
	remember(s, s.state.pools, poolID, clonePool)
	pool.TotalStaked = pool.TotalStaked.Sub(amount)
	if releaseSlot && pool.HasFiniteSlots() {
		*pool.AvailableSlots++
	}
	pool.UpdatedAt = now()

	return nil
}

func (s *Store) AddCompoundedStake(ctx context.Context, poolID string, amount decimal.Decimal) error {
	defer s.lock(ctx)()

	pool, ok := s.state.pools[poolID]
	if !ok {
		return &db.NotFoundError{
			Key:     poolID,
			Message: "staking pool not found when compounding stake",
		}
	}
	remember(s, s.state.pools, poolID, clonePool)
	pool.TotalStaked = pool.TotalStaked.Add(amount)
	pool.UpdatedAt = now()

	return nil
}

func (s *Store) pool(poolID string) (*model.StakingPoolDocument, error) {
	pool, ok := s.state.pools[poolID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     poolID,
			Message: "staking pool not found",
		}
	}
	return pool, nil
}
