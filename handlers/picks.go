package handlers

import (
	"encoding/json"
	"net/http"

	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

// PickHandler handles pick submission and retrieval
type PickHandler struct {
	pickService   *services.PickService
	currentSeason int
}

// NewPickHandler creates a new pick handler
func NewPickHandler(pickService *services.PickService, currentSeason int) *PickHandler {
	return &PickHandler{
		pickService:   pickService,
		currentSeason: currentSeason,
	}
}

type submitPicksRequest struct {
	ParticipantID    string                    `json:"participant_id"`
	Picks            []services.PickSubmission `json:"picks"`
	TieBreakerAnswer *float64                  `json:"tie_breaker_answer,omitempty"`
}

// SubmitPicks handles POST /api/pools/{poolID}/picks/{week}
func (h *PickHandler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	poolID := mux.Vars(r)["poolID"]
	week, err := intVar(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req submitPicksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParticipantID == "" {
		writeError(w, http.StatusBadRequest, "participant_id is required")
		return
	}

	if err := h.pickService.SubmitPicks(r.Context(), poolID, req.ParticipantID, week, req.Picks, req.TieBreakerAnswer); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "picks stored"})
}

// GetParticipantPicks handles GET /api/pools/{poolID}/picks/{week}/{participantID}
func (h *PickHandler) GetParticipantPicks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	week, err := intVar(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	season := seasonQuery(r, h.currentSeason)
	picks, err := h.pickService.GetParticipantPicks(r.Context(), vars["participantID"], vars["poolID"], season, week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load picks")
		return
	}

	writeJSON(w, http.StatusOK, picks)
}
