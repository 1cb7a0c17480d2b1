package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/services"
)

// GameHandler handles game schedule and ingestion requests
type GameHandler struct {
	gameService   *services.GameService
	currentSeason int
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *services.GameService, currentSeason int) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		currentSeason: currentSeason,
	}
}

// GetWeekGames handles GET /api/games/{week}
func (h *GameHandler) GetWeekGames(w http.ResponseWriter, r *http.Request) {
	week, err := intVar(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	season := seasonQuery(r, h.currentSeason)
	games, err := h.gameService.GetWeekGames(r.Context(), season, week)
	if err != nil {
		logging.Errorf("GameHandler: Failed to load week %d games: %v", week, err)
		writeError(w, http.StatusInternalServerError, "unable to load games")
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// GetCurrentWeek handles GET /api/games/current-week
func (h *GameHandler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, seasonType, err := h.gameService.GetCurrentWeek(r.Context(), time.Now())
	if err != nil {
		logging.Errorf("GameHandler: Failed to resolve current week: %v", err)
		writeError(w, http.StatusInternalServerError, "unable to resolve current week")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"season":      h.currentSeason,
		"season_type": seasonType,
		"week":        week,
	})
}

// UpsertGames handles POST /api/admin/games. Admin-only; the schedule
// and results arrive as uploads rather than a live feed.
func (h *GameHandler) UpsertGames(w http.ResponseWriter, r *http.Request) {
	var games []*models.Game
	if err := json.NewDecoder(r.Body).Decode(&games); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.gameService.UpsertGames(r.Context(), games)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"upserted": count})
}
