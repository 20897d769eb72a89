package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/services"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

type stakeBody struct {
	PoolID      string          `json:"pool_id"`
	Amount      decimal.Decimal `json:"amount"`
	AutoRestake bool            `json:"auto_restake"`
}

type unstakeBody struct {
	// Amount is optional, the whole position is withdrawn without it
	Amount *decimal.Decimal `json:"amount"`
}

type rewardBody struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ping(r.Context()); err != nil {
		writeError(w, r, types.NewInternalServiceError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, "ok")
}

func (s *Server) listPools(w http.ResponseWriter, r *http.Request) {
	pools, err := s.svc.GetPoolCatalog(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, poolViews(pools))
}

func (s *Server) listPositions(w http.ResponseWriter, r *http.Request) {
	includeClosed := false
	if raw := r.URL.Query().Get("include_closed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, types.NewValidationError("invalid include_closed value %q", raw))
			return
		}
		includeClosed = parsed
	}

	positions, err := s.svc.GetPositions(r.Context(), ownerID(r), includeClosed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, positions)
}

func (s *Server) pendingRewards(w http.ResponseWriter, r *http.Request) {
	pending, err := s.svc.GetPendingRewards(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pending)
}

func (s *Server) rewardHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.GetRewardHistory(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

func (s *Server) stakingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.GetStakingStats(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) getAutoStaking(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.GetAutoStakingConfig(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, autoStakingView(cfg))
}

func (s *Server) putAutoStaking(w http.ResponseWriter, r *http.Request) {
	var update services.AutoStakingConfigUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	cfg, err := s.svc.UpsertAutoStakingConfig(r.Context(), ownerID(r), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, autoStakingView(cfg))
}

func (s *Server) stake(w http.ResponseWriter, r *http.Request) {
	var body stakeBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.svc.Stake(r.Context(), services.StakeRequest{
		RequestID:   requestID(r),
		OwnerID:     ownerID(r),
		PoolID:      body.PoolID,
		Amount:      body.Amount,
		AutoRestake: body.AutoRestake,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, createdOrReplayed(result.Replayed), result)
}

func (s *Server) claim(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Claim(r.Context(), services.ClaimRequest{
		RequestID:  requestID(r),
		OwnerID:    ownerID(r),
		PositionID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) unstake(w http.ResponseWriter, r *http.Request) {
	var body unstakeBody
	// an empty body withdraws everything
	if r.ContentLength != 0 {
		if err := decodeBody(r, &body); err != nil {
			writeError(w, r, err)
			return
		}
	}

	result, err := s.svc.Unstake(r.Context(), services.UnstakeRequest{
		RequestID:  requestID(r),
		OwnerID:    ownerID(r),
		PositionID: chi.URLParam(r, "id"),
		Amount:     body.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) routeReward(w http.ResponseWriter, r *http.Request) {
	var body rewardBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	decision, err := s.svc.RouteReward(r.Context(), &queue.RewardEarnedEvent{
		RequestID: requestID(r),
		OwnerID:   ownerID(r),
		Amount:    body.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decision)
}

func createdOrReplayed(replayed bool) int {
	if replayed {
		return http.StatusOK
	}
	return http.StatusCreated
}
