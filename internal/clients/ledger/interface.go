package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

//go:generate mockery --name=LedgerInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_ledger.go
type LedgerInterface interface {
	// Debit fails with ErrInsufficientBalance when the balance is lower than amount.
	Debit(ctx context.Context, ownerID string, amount decimal.Decimal) error
	Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error
	Balance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	// Transactional reports whether Debit and Credit join the store
	// transaction carried by ctx. Callers compensate committed debits of
	// non transactional ledgers themselves.
	Transactional() bool
}
