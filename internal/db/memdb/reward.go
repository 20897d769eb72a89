package memdb

import (
	"context"
	"sort"
	"time"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveRewardRecord(ctx context.Context, record *model.RewardRecordDocument) error {
	defer s.lock(ctx)()

	if _, ok := s.state.rewards[record.ID]; ok {
		return &db.DuplicateKeyError{
			Key:     record.ID,
			Message: "reward record already exists",
		}
	}
	remember(s, s.state.rewards, record.ID, cloneReward)
	s.state.rewards[record.ID] = cloneReward(record)

	return nil
}

func (s *Store) ClaimRewardRecords(
	ctx context.Context, positionID string, claimedAt time.Time,
) (decimal.Decimal, error) {
	defer s.lock(ctx)()

	sum := decimal.Zero
	for id, record := range s.state.rewards {
		if record.StakePositionID != positionID || record.IsClaimed {
			continue
		}
		remember(s, s.state.rewards, id, cloneReward)
		at := claimedAt
		record.IsClaimed = true
		record.ClaimedAt = &at
		sum = sum.Add(record.RewardAmount)
	}

	return sum, nil
}

func (s *Store) GetRewardRecordsByPosition(
	ctx context.Context, positionID string,
) ([]*model.RewardRecordDocument, error) {
	defer s.lock(ctx)()

	var records []*model.RewardRecordDocument
	for _, record := range s.state.rewards {
		if record.StakePositionID == positionID {
			records = append(records, cloneReward(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CalculatedAt.Equal(records[j].CalculatedAt) {
			return records[i].CalculatedAt.Before(records[j].CalculatedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

func (s *Store) SumClaimedRewards(ctx context.Context, positionID string) (decimal.Decimal, error) {
	defer s.lock(ctx)()

	sum := decimal.Zero
	for _, record := range s.state.rewards {
		if record.StakePositionID == positionID && record.IsClaimed {
			sum = sum.Add(record.RewardAmount)
		}
	}

	return sum, nil
}
