package memdb

import (
	"context"
	"sort"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
)

func (s *Store) GetAutoStakingConfig(ctx context.Context, ownerID string) (*model.AutoStakingConfigDocument, error) {
	defer s.lock(ctx)()

	cfg, ok := s.state.autoStakes[ownerID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     ownerID,
			Message: "auto staking config not found",
		}
	}
	c := *cfg
	return &c, nil
}

func (s *Store) UpsertAutoStakingConfig(ctx context.Context, cfg *model.AutoStakingConfigDocument) error {
	defer s.lock(ctx)()

	remember(s, s.state.autoStakes, cfg.OwnerID, cloneAutoStake)
	s.state.autoStakes[cfg.OwnerID] = cloneAutoStake(cfg)
	return nil
}

func (s *Store) GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	defer s.lock(ctx)()

	return s.state.balances[ownerID], nil
}

func (s *Store) DebitBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	defer s.lock(ctx)()

	balance, ok := s.state.balances[ownerID]
	if !ok || balance.LessThan(amount) {
		return &db.InsufficientBalanceError{OwnerID: ownerID}
	}
	remember(s, s.state.balances, ownerID, sameBalance)
	s.state.balances[ownerID] = balance.Sub(amount)
	return nil
}

func (s *Store) CreditBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	defer s.lock(ctx)()

	remember(s, s.state.balances, ownerID, sameBalance)
	s.state.balances[ownerID] = s.state.balances[ownerID].Add(amount)
	return nil
}

func (s *Store) SaveRequest(ctx context.Context, request *model.RequestDocument) error {
	defer s.lock(ctx)()

	if _, ok := s.state.requests[request.RequestID]; ok {
		return &db.DuplicateKeyError{
			Key:     request.RequestID,
			Message: "request already processed",
		}
	}
	remember(s, s.state.requests, request.RequestID, cloneRequest)
	s.state.requests[request.RequestID] = cloneRequest(request)
	return nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (*model.RequestDocument, error) {
	defer s.lock(ctx)()

	request, ok := s.state.requests[requestID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     requestID,
			Message: "request not found",
		}
	}
	r := *request
	return &r, nil
}

func (s *Store) SaveAccrualFailure(ctx context.Context, positionID, day, reason string) error {
	defer s.lock(ctx)()

	remember(s, s.state.failures, positionID, cloneFailure)
	failure, ok := s.state.failures[positionID]
	if !ok {
		failure = &model.AccrualFailureDocument{PositionID: positionID}
		s.state.failures[positionID] = failure
	}
	failure.Day = day
	failure.Error = reason
	failure.Attempts++
	failure.UpdatedAt = now()

	return nil
}

func (s *Store) GetAccrualFailures(ctx context.Context, limit int64) ([]*model.AccrualFailureDocument, error) {
	defer s.lock(ctx)()

	failures := make([]*model.AccrualFailureDocument, 0, len(s.state.failures))
	for _, failure := range s.state.failures {
		f := *failure
		failures = append(failures, &f)
	}
	sort.Slice(failures, func(i, j int) bool {
		if !failures[i].UpdatedAt.Equal(failures[j].UpdatedAt) {
			return failures[i].UpdatedAt.Before(failures[j].UpdatedAt)
		}
		return failures[i].PositionID < failures[j].PositionID
	})
	if limit > 0 && int64(len(failures)) > limit {
		failures = failures[:limit]
	}

	return failures, nil
}

func (s *Store) DeleteAccrualFailure(ctx context.Context, positionID string) error {
	defer s.lock(ctx)()

	if _, ok := s.state.failures[positionID]; !ok {
		return &db.NotFoundError{
			Key:     positionID,
			Message: "accrual failure not found",
		}
	}
	remember(s, s.state.failures, positionID, cloneFailure)
	delete(s.state.failures, positionID)
	return nil
}
