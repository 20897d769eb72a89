package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rewardstack/staking-engine/internal/types"
)

type ownerKey struct{}

// traceRequest correlates the log lines of a request with its request id
// and echoes the id back to the caller.
func traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.WithTraceID(r.Context(), chimw.GetReqID(r.Context()))
		w.Header().Set(traceHeader, tracing.TraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observe := metrics.StartAPIRequestTimer(r.Method)
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observe(route, status)
	})
}

// requireOwner reads the owner id set by the gateway.
func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(ownerHeader)
		if ownerID == "" {
			writeError(w, r, types.NewValidationError("missing %s header", ownerHeader))
			return
		}
		ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireIdempotencyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(idempotencyHeader) == "" {
			writeError(w, r, types.NewValidationError("missing %s header", idempotencyHeader))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ownerID(r *http.Request) string {
	ownerID, _ := r.Context().Value(ownerKey{}).(string)
	return ownerID
}

func requestID(r *http.Request) string {
	return r.Header.Get(idempotencyHeader)
}
