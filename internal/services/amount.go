package services

import (
	"github.com/rewardstack/staking-engine/internal/accrual"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

var hundredPercent = decimal.NewFromInt(100)

// isLedgerAmount reports whether amount fits the ledger precision.
func isLedgerAmount(amount decimal.Decimal) bool {
	return amount.Equal(accrual.Truncate(amount))
}

func validateAmount(field string, amount decimal.Decimal) *types.Error {
	if !amount.IsPositive() {
		return types.NewValidationError("%s must be positive, got %s", field, amount)
	}
	if !isLedgerAmount(amount) {
		return types.NewValidationError("%s %s has more than %d decimals", field, amount, accrual.Precision)
	}
	return nil
}
