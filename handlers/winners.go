package handlers

import (
	"net/http"

	"confidence-pool-go/logging"
	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

// WinnerHandler serves resolved period winners
type WinnerHandler struct {
	winnerService *services.WinnerService
	poolService   *services.PoolService
	currentSeason int
}

// NewWinnerHandler creates a new winner handler
func NewWinnerHandler(winnerService *services.WinnerService, poolService *services.PoolService, currentSeason int) *WinnerHandler {
	return &WinnerHandler{
		winnerService: winnerService,
		poolService:   poolService,
		currentSeason: currentSeason,
	}
}

// GetPoolWinners handles GET /api/pools/{poolID}/winners
func (h *WinnerHandler) GetPoolWinners(w http.ResponseWriter, r *http.Request) {
	poolID := mux.Vars(r)["poolID"]
	season := seasonQuery(r, h.currentSeason)

	winners, err := h.winnerService.GetPoolWinners(r.Context(), poolID, season)
	if err != nil {
		logging.Errorf("WinnerHandler: Failed to load winners for pool %s: %v", poolID, err)
		writeError(w, http.StatusInternalServerError, "unable to load winners")
		return
	}

	writeJSON(w, http.StatusOK, winners)
}

// GetPeriodWinner handles GET /api/pools/{poolID}/winners/{period}
func (h *WinnerHandler) GetPeriodWinner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season := seasonQuery(r, h.currentSeason)

	winner, err := h.winnerService.GetPeriodWinner(r.Context(), vars["poolID"], season, vars["period"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if winner == nil {
		writeError(w, http.StatusNotFound, "period not resolved yet")
		return
	}

	writeJSON(w, http.StatusOK, winner)
}

// ResolvePeriod handles POST /api/admin/pools/{poolID}/winners/{period}.
// Admin re-trigger after a late correction; the completion gate still
// applies.
func (h *WinnerHandler) ResolvePeriod(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pool, err := h.poolService.GetPool(r.Context(), vars["poolID"])
	if err != nil {
		writeError(w, http.StatusNotFound, "pool not found")
		return
	}

	winner, err := h.winnerService.ResolvePeriod(r.Context(), pool, vars["period"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if winner == nil {
		writeError(w, http.StatusConflict, "period is not complete yet")
		return
	}

	writeJSON(w, http.StatusOK, winner)
}
