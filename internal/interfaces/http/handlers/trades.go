package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/persistence"
)

type tradeRequest struct {
	User      string  `json:"user"`
	Address   string  `json:"address"`
	AmountEth float64 `json:"amount_eth"`
	IsBuy     *bool   `json:"is_buy"`
}

// Trade serves POST /api/trades, recording a trade intent. No on-chain
// call is made.
func (h *Handlers) Trade(w http.ResponseWriter, r *http.Request) {
	if h.trades == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "persistence_disabled",
			"trade recording requires a configured database")
		return
	}

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	switch {
	case req.User == "":
		h.writeError(w, r, http.StatusBadRequest, "validation", "user is required")
		return
	case !coin.ValidAddress(req.Address):
		h.writeError(w, r, http.StatusBadRequest, "validation",
			"address must be a 0x-prefixed 40-hex-character value")
		return
	case req.AmountEth <= 0:
		h.writeError(w, r, http.StatusBadRequest, "validation", "amount_eth must be positive")
		return
	case req.IsBuy == nil:
		h.writeError(w, r, http.StatusBadRequest, "validation", "is_buy is required")
		return
	}

	rec := persistence.TradeRecord{
		User:      req.User,
		Address:   coin.NormalizeAddress(req.Address),
		AmountEth: req.AmountEth,
		IsBuy:     *req.IsBuy,
	}
	if err := h.trades.Insert(r.Context(), rec); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "internal", "failed to record trade")
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}
