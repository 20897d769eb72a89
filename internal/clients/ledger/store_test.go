package ledger_test

import (
	"testing"

	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/db/memdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLedger(t *testing.T) {
	ctx := t.Context()
	l := ledger.NewLedgerWithMetrics(ledger.NewStoreLedger(memdb.New()))

	assert.True(t, l.Transactional())

	err := l.Debit(ctx, "owner", decimal.RequireFromString("1"))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	require.NoError(t, l.Credit(ctx, "owner", decimal.RequireFromString("12.5")))
	require.NoError(t, l.Credit(ctx, "owner", decimal.Zero))
	require.NoError(t, l.Debit(ctx, "owner", decimal.RequireFromString("2.5")))

	balance, err := l.Balance(ctx, "owner")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("10")))

	assert.Error(t, l.Debit(ctx, "owner", decimal.Zero))
	assert.Error(t, l.Credit(ctx, "owner", decimal.RequireFromString("-1")))
}
