package services

import (
	"context"
	"time"

	"github.com/rewardstack/staking-engine/consumer"
	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db"
)

type Service struct {
	cfg           *config.Config
	db            db.DbInterface
	ledger        ledger.LedgerInterface
	eventConsumer consumer.EventConsumer
	// now is replaced in tests to move through lock periods
	now func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	ledger ledger.LedgerInterface,
	eventConsumer consumer.EventConsumer,
) *Service {
	if eventConsumer == nil {
		eventConsumer = consumer.NoopConsumer{}
	}
	return &Service{
		cfg:           cfg,
		db:            db,
		ledger:        ledger,
		eventConsumer: eventConsumer,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// StartPollers starts the background accrual, reconciliation and stats
// pollers. They stop when ctx is cancelled.
func (s *Service) StartPollers(ctx context.Context) {
	s.StartAccrualPoller(ctx)
	s.StartReconcilePoller(ctx)
	s.StartStatsPoller(ctx)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
