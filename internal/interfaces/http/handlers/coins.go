package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zoracast/zoracast/internal/coin"
)

// Coin serves GET /api/coins/{address}: the raw snapshot and comments
// straight from the provider, bypassing prediction.
func (h *Handlers) Coin(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if !coin.ValidAddress(address) {
		h.writeError(w, r, http.StatusBadRequest, "validation",
			"address must be a 0x-prefixed 40-hex-character value")
		return
	}

	snap, comments, err := h.provider.Fetch(r.Context(), address)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"coin":     snap,
		"comments": comments,
	})
}

// TopGainers serves GET /api/top-gainers?count=N.
func (h *Handlers) TopGainers(w http.ResponseWriter, r *http.Request) {
	count := 5
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			h.writeError(w, r, http.StatusBadRequest, "validation",
				"count must be an integer between 1 and 100")
			return
		}
		count = n
	}

	coins, err := h.provider.TopGainers(r.Context(), count)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"coins": coins})
}
