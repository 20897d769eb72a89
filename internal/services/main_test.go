package services

import (
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db/memdb"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var genesis = time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(days int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
	return c.now
}

type fixture struct {
	srv   *Service
	store *memdb.Store
	clock *clock
}

func testConfig() *config.Config {
	return &config.Config{
		Poller: config.PollerConfig{
			AccrualChunkSize:   2,
			AccrualConcurrency: 4,
		},
		Staking: config.StakingConfig{
			MaxRetryTimes: 5,
			RetryInterval: time.Millisecond,
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memdb.New()
	clk := &clock{now: genesis}
	srv := NewService(testConfig(), store, ledger.NewStoreLedger(store), nil)
	srv.now = clk.Now

	return &fixture{srv: srv, store: store, clock: clk}
}

type poolOption func(*model.StakingPoolDocument)

func withSlots(slots int64) poolOption {
	return func(p *model.StakingPoolDocument) {
		p.AvailableSlots = &slots
	}
}

func withRisk(risk types.RiskLevel) poolOption {
	return func(p *model.StakingPoolDocument) {
		p.RiskLevel = risk
	}
}

func withMaximum(maximum string) poolOption {
	return func(p *model.StakingPoolDocument) {
		m := decimal.RequireFromString(maximum)
		p.MaximumStake = &m
	}
}

// addPool imports an active pool with a 100 minimum stake and a 10% penalty.
func (f *fixture) addPool(t *testing.T, id, apy string, lockDays uint32, opts ...poolOption) *model.StakingPoolDocument {
	t.Helper()

	pool := &model.StakingPoolDocument{
		ID:                            id,
		Name:                          gofakeit.Company(),
		YieldRateAnnualPercent:        decimal.RequireFromString(apy),
		MinimumStake:                  decimal.NewFromInt(100),
		LockPeriodDays:                lockDays,
		EarlyWithdrawalPenaltyPercent: decimal.NewFromInt(10),
		RiskLevel:                     types.RiskLow,
		IsActive:                      true,
	}
	for _, opt := range opts {
		opt(pool)
	}
	require.NoError(t, f.srv.ImportPools(t.Context(), []*model.StakingPoolDocument{pool}))
	return pool
}

// newOwner returns a fresh owner id funded with balance.
func (f *fixture) newOwner(t *testing.T, balance string) string {
	t.Helper()

	ownerID := gofakeit.UUID()
	require.NoError(t, f.store.CreditBalance(t.Context(), ownerID, decimal.RequireFromString(balance)))
	return ownerID
}

func (f *fixture) stake(t *testing.T, ownerID, poolID, amount string, autoRestake bool) *StakeResult {
	t.Helper()

	result, err := f.srv.Stake(t.Context(), StakeRequest{
		RequestID:   gofakeit.UUID(),
		OwnerID:     ownerID,
		PoolID:      poolID,
		Amount:      decimal.RequireFromString(amount),
		AutoRestake: autoRestake,
	})
	require.NoError(t, err)
	return result
}

func (f *fixture) balance(t *testing.T, ownerID string) decimal.Decimal {
	t.Helper()

	balance, err := f.store.GetBalance(t.Context(), ownerID)
	require.NoError(t, err)
	return balance
}

func (f *fixture) position(t *testing.T, positionID string) *model.StakePositionDocument {
	t.Helper()

	position, err := f.store.GetStakePosition(t.Context(), positionID)
	require.NoError(t, err)
	return position
}

func (f *fixture) pool(t *testing.T, poolID string) *model.StakingPoolDocument {
	t.Helper()

	pool, err := f.store.GetStakingPool(t.Context(), poolID)
	require.NoError(t, err)
	return pool
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func requireCode(t *testing.T, err error, code types.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.True(t, types.HasCode(err, code), "expected %s, got %v", code, err)
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
