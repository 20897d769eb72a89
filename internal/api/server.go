package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rs/zerolog/log"
)

const (
	ownerHeader       = "X-Owner-Id"
	idempotencyHeader = "Idempotency-Key"
	traceHeader       = "X-Trace-Id"
)

type Server struct {
	cfg        *config.APIConfig
	svc        StakingService
	httpServer *http.Server
}

func New(cfg *config.APIConfig, svc StakingService) *Server {
	s := &Server{cfg: cfg, svc: svc}
	s.httpServer = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + time.Second,
		IdleTimeout:       2 * cfg.RequestTimeout,
	}
	return s
}

// Handler builds the router serving the staking API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(traceRequest)
	r.Use(recordRequest)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/pools", s.listPools)

		r.Group(func(r chi.Router) {
			r.Use(requireOwner)

			r.Get("/positions", s.listPositions)
			r.Get("/positions/{id}/pending", s.pendingRewards)
			r.Get("/positions/{id}/rewards", s.rewardHistory)
			r.Get("/stats", s.stakingStats)
			r.Get("/auto-staking", s.getAutoStaking)
			r.Put("/auto-staking", s.putAutoStaking)

			r.Group(func(r chi.Router) {
				r.Use(requireIdempotencyKey)

				r.Post("/stakes", s.stake)
				r.Post("/positions/{id}/claim", s.claim)
				r.Post("/positions/{id}/unstake", s.unstake)
				r.Post("/rewards", s.routeReward)
			})
		})
	})

	return r
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("address", s.httpServer.Addr).Msg("starting api server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
