package ledger

import (
	"context"
	"time"

	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

type ledgerWithMetrics struct {
	ledger LedgerInterface
}

func NewLedgerWithMetrics(ledger LedgerInterface) *ledgerWithMetrics {
	return &ledgerWithMetrics{ledger: ledger}
}

func (l *ledgerWithMetrics) Debit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	_, err := runLedgerMethodWithMetrics("Debit", func() (struct{}, error) {
		return struct{}{}, l.ledger.Debit(ctx, ownerID, amount)
	})
	return err
}

func (l *ledgerWithMetrics) Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	_, err := runLedgerMethodWithMetrics("Credit", func() (struct{}, error) {
		return struct{}{}, l.ledger.Credit(ctx, ownerID, amount)
	})
	return err
}

func (l *ledgerWithMetrics) Balance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return runLedgerMethodWithMetrics("Balance", func() (decimal.Decimal, error) {
		return l.ledger.Balance(ctx, ownerID)
	})
}

func (l *ledgerWithMetrics) Transactional() bool {
	return l.ledger.Transactional()
}

func runLedgerMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordLedgerLatency(duration, method, err != nil)
	return v, err
}
