package handlers

import (
	"encoding/json"
	"net/http"

	"confidence-pool-go/services"

	"github.com/gorilla/mux"
)

// PoolHandler handles pool administration requests
type PoolHandler struct {
	poolService   *services.PoolService
	currentSeason int
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(poolService *services.PoolService, currentSeason int) *PoolHandler {
	return &PoolHandler{
		poolService:   poolService,
		currentSeason: currentSeason,
	}
}

type createPoolRequest struct {
	Name   string `json:"name"`
	Season int    `json:"season"`
}

// CreatePool handles POST /api/admin/pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req createPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Season == 0 {
		req.Season = h.currentSeason
	}

	pool, err := h.poolService.CreatePool(r.Context(), req.Name, req.Season)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, pool)
}

// ListPools handles GET /api/pools
func (h *PoolHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	season := seasonQuery(r, h.currentSeason)

	pools, err := h.poolService.ListActivePools(r.Context(), season)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load pools")
		return
	}

	writeJSON(w, http.StatusOK, pools)
}

// GetPool handles GET /api/pools/{poolID}
func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.poolService.GetPool(r.Context(), mux.Vars(r)["poolID"])
	if err != nil {
		writeError(w, http.StatusNotFound, "pool not found")
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

type addParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddParticipant handles POST /api/admin/pools/{poolID}/participants
func (h *PoolHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participant, err := h.poolService.AddParticipant(r.Context(), mux.Vars(r)["poolID"], req.Name, req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, participant)
}

// GetParticipants handles GET /api/pools/{poolID}/participants
func (h *PoolHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.poolService.GetParticipants(r.Context(), mux.Vars(r)["poolID"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load participants")
		return
	}

	writeJSON(w, http.StatusOK, participants)
}

type tieBreakerRequest struct {
	Question string   `json:"question"`
	Answer   *float64 `json:"answer,omitempty"`
}

// SetTieBreaker handles PUT /api/admin/pools/{poolID}/tie-breaker
func (h *PoolHandler) SetTieBreaker(w http.ResponseWriter, r *http.Request) {
	var req tieBreakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.poolService.SetTieBreaker(r.Context(), mux.Vars(r)["poolID"], req.Question, req.Answer); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "tie breaker updated"})
}
