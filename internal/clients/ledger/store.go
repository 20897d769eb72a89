package ledger

import (
	"context"
	"fmt"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/shopspring/decimal"
)

// BalanceStore is the part of the store that keeps owner balances.
type BalanceStore interface {
	GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, ownerID string, amount decimal.Decimal) error
}

// StoreLedger keeps balances next to positions so that every call joins
// the transaction of the surrounding unit of work.
type StoreLedger struct {
	store BalanceStore
}

func NewStoreLedger(store BalanceStore) *StoreLedger {
	return &StoreLedger{store: store}
}

func (l *StoreLedger) Debit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("debit amount must be positive, got %s", amount)
	}

	err := l.store.DebitBalance(ctx, ownerID, amount)
	if db.IsInsufficientBalanceError(err) {
		return fmt.Errorf("%w: owner %s cannot pay %s", ErrInsufficientBalance, ownerID, amount)
	}
	return err
}

func (l *StoreLedger) Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if amount.IsNegative() {
		return fmt.Errorf("credit amount must not be negative, got %s", amount)
	}

	return l.store.CreditBalance(ctx, ownerID, amount)
}

func (l *StoreLedger) Balance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return l.store.GetBalance(ctx, ownerID)
}

func (l *StoreLedger) Transactional() bool {
	return true
}
