package api

import (
	"encoding/json"
	"net/http"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataResponse{Data: data}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// writeError shows the reason of client errors. Internal failures are logged
// and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	typed := types.AsError(err)
	if typed == nil {
		typed = types.NewInternalServiceError(err)
	}

	message := typed.Error()
	if typed.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = "internal service error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(typed.StatusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		ErrorCode: typed.ErrorCode.String(),
		Message:   message,
	}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write error response")
	}
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return types.NewValidationError("invalid request body: %v", err)
	}
	return nil
}
