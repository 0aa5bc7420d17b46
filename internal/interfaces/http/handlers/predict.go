package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/persistence"
)

// Predict serves GET /api/predict/{address}?planned_time=RFC3339.
// The planned time is optional; without it no time-of-day adjustment
// is applied.
func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	var planned *time.Time
	if raw := r.URL.Query().Get("planned_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "validation",
				"planned_time must be RFC3339")
			return
		}
		planned = &t
	}

	pred, err := h.predictor.Predict(r.Context(), address, planned)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}

	// Persist for later training-sample assembly. Failure to record is
	// logged, not surfaced: the prediction itself already succeeded.
	if h.predictions != nil {
		rec := persistence.PredictionRecord{
			Address:        pred.Address,
			PredictedValue: pred.PredictedValue,
			PlannedTime:    pred.PlannedTime,
			Features:       pred.Features,
			ObservedAt:     pred.GeneratedAt,
		}
		if err := h.predictions.Insert(r.Context(), rec); err != nil {
			log.Warn().Err(err).Str("address", pred.Address).Msg("Failed to record prediction")
		}
	}

	h.writeJSON(w, http.StatusOK, pred.PredictionResult)
}
