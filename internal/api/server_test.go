package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db/memdb"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/rewardstack/staking-engine/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	handler http.Handler
	store   *memdb.Store
	owner   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memdb.New()
	cfg := &config.Config{
		Staking: config.StakingConfig{MaxRetryTimes: 3, RetryInterval: time.Millisecond},
		API:     config.APIConfig{Host: "127.0.0.1", Port: 8090, RequestTimeout: 5 * time.Second},
	}
	svc := services.NewService(cfg, store, ledger.NewStoreLedger(store), nil)

	slots := int64(10)
	maximum := decimal.NewFromInt(5000)
	require.NoError(t, svc.ImportPools(t.Context(), []*model.StakingPoolDocument{
		{
			ID:                            "gold",
			Name:                          "Gold",
			YieldRateAnnualPercent:        decimal.NewFromInt(12),
			MinimumStake:                  decimal.NewFromInt(100),
			MaximumStake:                  &maximum,
			LockPeriodDays:                30,
			EarlyWithdrawalPenaltyPercent: decimal.NewFromInt(10),
			IsActive:                      true,
			AvailableSlots:                &slots,
		},
	}))

	owner := gofakeit.UUID()
	require.NoError(t, store.CreditBalance(t.Context(), owner, decimal.NewFromInt(10000)))

	return &testAPI{
		handler: New(&cfg.API, svc).Handler(),
		store:   store,
		owner:   owner,
	}
}

func (a *testAPI) do(t *testing.T, method, path, idempotencyKey string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(ownerHeader, a.owner)
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dataResponse{Data: v}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceHeader))
}

func TestStakeFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/pools", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pools []poolView
	decodeData(t, rec, &pools)
	require.Len(t, pools, 1)
	assert.Equal(t, "gold", pools[0].ID)

	rec = api.do(t, http.MethodPost, "/v1/stakes", "stake-1", map[string]any{
		"pool_id": "gold",
		"amount":  "1000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var staked services.StakeResult
	decodeData(t, rec, &staked)
	assert.True(t, decimal.NewFromInt(1000).Equal(staked.Amount))

	rec = api.do(t, http.MethodPost, "/v1/stakes", "stake-1", map[string]any{
		"pool_id": "gold",
		"amount":  "1000",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var replayed services.StakeResult
	decodeData(t, rec, &replayed)
	assert.True(t, replayed.Replayed)
	assert.Equal(t, staked.PositionID, replayed.PositionID)

	rec = api.do(t, http.MethodGet, "/v1/positions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var positions []services.PositionView
	decodeData(t, rec, &positions)
	require.Len(t, positions, 1)
	assert.True(t, positions[0].IsLocked)

	rec = api.do(t, http.MethodGet, "/v1/positions/"+staked.PositionID+"/pending", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/positions/"+staked.PositionID+"/claim", "claim-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "NO_REWARDS", decodeError(t, rec).ErrorCode)

	rec = api.do(t, http.MethodPost, "/v1/positions/"+staked.PositionID+"/unstake", "unstake-1", map[string]any{
		"amount": "400",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var unstaked services.UnstakeResult
	decodeData(t, rec, &unstaked)
	assert.True(t, decimal.NewFromInt(40).Equal(unstaked.Penalty))
	assert.False(t, unstaked.Closed)

	rec = api.do(t, http.MethodPost, "/v1/positions/"+staked.PositionID+"/unstake", "unstake-2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &unstaked)
	assert.True(t, unstaked.Closed)

	rec = api.do(t, http.MethodPost, "/v1/positions/"+staked.PositionID+"/unstake", "unstake-3", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "POSITION_CLOSED", decodeError(t, rec).ErrorCode)

	rec = api.do(t, http.MethodGet, "/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats services.StakingStats
	decodeData(t, rec, &stats)
	assert.Equal(t, int64(1), stats.PositionCount)
	assert.True(t, stats.TotalStaked.IsZero())

	balance, err := api.store.GetBalance(t.Context(), api.owner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9900).Equal(balance), balance.String())
}

func TestAutoStakingRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/auto-staking", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, "/v1/auto-staking", "", map[string]any{
		"is_enabled":          true,
		"default_pool_id":     "gold",
		"minimum_auto_stake":  "100",
		"percentage_to_stake": "50",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/v1/rewards", "reward-1", map[string]any{"amount": "1000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decision services.RoutingDecision
	decodeData(t, rec, &decision)
	assert.True(t, decision.Staked)
	assert.True(t, decimal.NewFromInt(500).Equal(decision.Amount))

	rec = api.do(t, http.MethodPut, "/v1/auto-staking", "", map[string]any{"percentage_to_stake": "150"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).ErrorCode)
}

func TestRequestValidation(t *testing.T) {
	api := newTestAPI(t)

	t.Run("missing owner", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/positions", nil)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("missing idempotency key", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/stakes", "", map[string]any{"pool_id": "gold", "amount": "1000"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, idempotencyHeader)
	})
	t.Run("unknown field", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/stakes", "stake-x", map[string]any{"pool": "gold"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("capacity", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/stakes", "stake-y", map[string]any{"pool_id": "gold", "amount": "6000"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).ErrorCode)
	})
	t.Run("insufficient balance", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/stakes", "stake-z", map[string]any{"pool_id": "gold", "amount": "5000"})
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = api.do(t, http.MethodPost, "/v1/stakes", "stake-w", map[string]any{"pool_id": "gold", "amount": "5000"})
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = api.do(t, http.MethodPost, "/v1/stakes", "stake-v", map[string]any{"pool_id": "gold", "amount": "100"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "INSUFFICIENT_BALANCE", decodeError(t, rec).ErrorCode)
	})
	t.Run("bad query", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/positions?include_closed=maybe", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
