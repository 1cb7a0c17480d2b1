package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

// PlayoffHandler handles the postseason roster and playoff weight
// submissions
type PlayoffHandler struct {
	playoffService *services.PlayoffService
	currentSeason  int
}

// NewPlayoffHandler creates a new playoff handler
func NewPlayoffHandler(playoffService *services.PlayoffService, currentSeason int) *PlayoffHandler {
	return &PlayoffHandler{
		playoffService: playoffService,
		currentSeason:  currentSeason,
	}
}

type setPlayoffTeamsRequest struct {
	Season int                         `json:"season"`
	Teams  []services.PlayoffTeamEntry `json:"teams"`
}

// SetPlayoffTeams handles PUT /api/admin/playoff-teams
func (h *PlayoffHandler) SetPlayoffTeams(w http.ResponseWriter, r *http.Request) {
	var req setPlayoffTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	season := req.Season
	if season == 0 {
		season = h.currentSeason
	}

	if err := h.playoffService.SetPlayoffTeams(r.Context(), season, req.Teams); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "playoff teams stored"})
}

// GetPlayoffTeams handles GET /api/playoff-teams
func (h *PlayoffHandler) GetPlayoffTeams(w http.ResponseWriter, r *http.Request) {
	season := seasonQuery(r, h.currentSeason)
	teams, err := h.playoffService.GetPlayoffTeams(r.Context(), season)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load playoff teams")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

type submitPlayoffWeightsRequest struct {
	ParticipantID string         `json:"participant_id"`
	Weights       map[string]int `json:"weights"`
}

// SubmitPlayoffWeights handles POST /api/pools/{poolID}/playoff-weights
func (h *PlayoffHandler) SubmitPlayoffWeights(w http.ResponseWriter, r *http.Request) {
	h.submitWeights(w, r, false)
}

// OverridePlayoffWeights handles PUT /api/admin/pools/{poolID}/playoff-weights.
// It bypasses the submission lock.
func (h *PlayoffHandler) OverridePlayoffWeights(w http.ResponseWriter, r *http.Request) {
	h.submitWeights(w, r, true)
}

func (h *PlayoffHandler) submitWeights(w http.ResponseWriter, r *http.Request, force bool) {
	poolID := mux.Vars(r)["poolID"]

	var req submitPlayoffWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParticipantID == "" {
		writeError(w, http.StatusBadRequest, "participant_id is required")
		return
	}

	err := h.playoffService.SubmitWeights(r.Context(), poolID, req.ParticipantID, req.Weights, force)
	if err != nil {
		if errors.Is(err, services.ErrPlayoffWeightsLocked) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "playoff weights stored"})
}

// GetPlayoffWeights handles GET /api/pools/{poolID}/playoff-weights/{participantID}
func (h *PlayoffHandler) GetPlayoffWeights(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season := seasonQuery(r, h.currentSeason)

	weights, err := h.playoffService.GetWeights(r.Context(), vars["poolID"], vars["participantID"], season)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load playoff weights")
		return
	}
	writeJSON(w, http.StatusOK, weights)
}
