package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"confidence-pool-go/logging"

	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("Handlers: Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// intVar reads a numeric path variable
func intVar(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing %s", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

// seasonQuery reads an optional ?season= override, falling back to the
// configured current season
func seasonQuery(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return fallback
	}
	season, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return season
}
