package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmoreira/callsync/internal/storage"
	"github.com/rs/zerolog"
)

// RunsHandler exposes the persisted run history for operators.
type RunsHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewRunsHandler creates a new RunsHandler
func NewRunsHandler(store storage.Store, logger zerolog.Logger) *RunsHandler {
	return &RunsHandler{
		store:  store,
		logger: logger,
	}
}

// List returns the run records for one day (query param `date`,
// YYYY-MM-DD, defaulting to today UTC).
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, `{"error":"date must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	records, err := h.store.GetRunRecords(date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("failed to load run records")
		http.Error(w, `{"error":"failed to load run records"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date": date,
		"runs": records,
	})
}
