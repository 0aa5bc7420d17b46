// Package handlers implements the zoracast API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/persistence"
	"github.com/zoracast/zoracast/internal/predictor"
	"github.com/zoracast/zoracast/internal/provider"
)

// Handlers holds the endpoint dependencies. The repositories are
// optional: when nil (no Postgres configured) predictions are still
// served, just not recorded.
type Handlers struct {
	predictor   *predictor.Predictor
	provider    provider.Provider
	predictions persistence.PredictionsRepo
	trades      persistence.TradesRepo
}

func NewHandlers(p *predictor.Predictor, prov provider.Provider, predictions persistence.PredictionsRepo, trades persistence.TradesRepo) *Handlers {
	return &Handlers{
		predictor:   p,
		provider:    prov,
		predictions: predictions,
		trades:      trades,
	}
}

// ErrorResponse is the wire shape of every error.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := r.Context().Value("request_id")
	if requestID == nil {
		requestID = "unknown"
	}
	h.writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID.(string),
		Timestamp: time.Now().UTC(),
	})
}

// writePipelineError maps the error taxonomy onto HTTP statuses:
// caller errors 4xx, readiness and upstream failures 5xx.
func (h *Handlers) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, coin.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, coin.ErrCoinNotFound):
		status = http.StatusNotFound
	case errors.Is(err, coin.ErrModelNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, coin.ErrUpstreamTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, coin.ErrUpstream):
		status = http.StatusBadGateway
	}
	h.writeError(w, r, status, coin.ErrorKind(err), err.Error())
}

// NotFound handles unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}

// Health reports process liveness and model readiness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if !h.predictor.Ready() {
		status = "training"
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      status,
		"model_ready": h.predictor.Ready(),
		"timestamp":   time.Now().UTC(),
	})
}
