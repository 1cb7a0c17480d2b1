package handlers

import (
	"net/http"

	"confidence-pool-go/logging"
	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

// ScoreHandler serves weekly scores and period leaderboards
type ScoreHandler struct {
	scoringService *services.ScoringService
	poolService    *services.PoolService
	currentSeason  int
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoringService *services.ScoringService, poolService *services.PoolService, currentSeason int) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
		poolService:    poolService,
		currentSeason:  currentSeason,
	}
}

// GetWeekScores handles GET /api/pools/{poolID}/scores/{week}
func (h *ScoreHandler) GetWeekScores(w http.ResponseWriter, r *http.Request) {
	poolID := mux.Vars(r)["poolID"]
	week, err := intVar(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	season := seasonQuery(r, h.currentSeason)
	scores, err := h.scoringService.GetWeekScores(r.Context(), poolID, season, week)
	if err != nil {
		logging.Errorf("ScoreHandler: Failed to load scores for pool %s week %d: %v", poolID, week, err)
		writeError(w, http.StatusInternalServerError, "unable to load scores")
		return
	}

	writeJSON(w, http.StatusOK, scores)
}

// GetPeriodStandings handles GET /api/pools/{poolID}/standings/{period}
func (h *ScoreHandler) GetPeriodStandings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season := seasonQuery(r, h.currentSeason)

	totals, err := h.scoringService.GetPeriodStandings(r.Context(), vars["poolID"], season, vars["period"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// RecomputeWeek handles POST /api/admin/pools/{poolID}/scores/{week}.
// The scheduled checker normally covers this; the endpoint exists for
// late stat corrections.
func (h *ScoreHandler) RecomputeWeek(w http.ResponseWriter, r *http.Request) {
	poolID := mux.Vars(r)["poolID"]
	week, err := intVar(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pool, err := h.poolService.GetPool(r.Context(), poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, "pool not found")
		return
	}

	scored, err := h.scoringService.ScoreWeek(r.Context(), pool, week)
	if err != nil {
		logging.Errorf("ScoreHandler: Recompute for pool %s week %d failed: %v", poolID, week, err)
		writeError(w, http.StatusInternalServerError, "recompute failed")
		return
	}
	if !scored {
		writeError(w, http.StatusConflict, "week is not complete yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "week rescored"})
}
