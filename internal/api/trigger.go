package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmoreira/callsync/internal/metrics"
	"github.com/dmoreira/callsync/internal/sync"
	"github.com/rs/zerolog"
)

// SyncRunner executes one full sync pass.
type SyncRunner interface {
	Run(ctx context.Context) sync.Summary
}

// TriggerHandler authorizes and executes sync runs. The endpoint is
// meant to be hit by an external scheduler with a shared-secret token
// in the query string.
type TriggerHandler struct {
	runner SyncRunner
	token  string
	logger zerolog.Logger
}

// NewTriggerHandler creates a new TriggerHandler
func NewTriggerHandler(runner SyncRunner, token string, logger zerolog.Logger) *TriggerHandler {
	return &TriggerHandler{
		runner: runner,
		token:  token,
		logger: logger,
	}
}

// Handle runs one sync pass. Any token mismatch is a 401; a missing
// server-side secret is a 500; a panic escaping the run surfaces as a
// generic 500 without killing the process.
func (h *TriggerHandler) Handle(w http.ResponseWriter, r *http.Request) {
	m := metrics.Get()

	if h.token == "" {
		h.logger.Error().Msg("TRIGGER_TOKEN is not configured")
		writeJSON(w, http.StatusInternalServerError, "error", "server configuration error")
		return
	}

	if r.URL.Query().Get("token") != h.token {
		h.logger.Warn().Str("remote", r.RemoteAddr).Msg("unauthorized trigger attempt")
		m.RecordTriggerRejected()
		writeJSON(w, http.StatusUnauthorized, "error", "unauthorized")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Interface("panic", rec).Msg("sync run panicked")
			writeJSON(w, http.StatusInternalServerError, "error", "internal server error")
		}
	}()

	h.logger.Info().Msg("authorized trigger received, starting sync run")
	m.RecordTriggerAccepted()

	summary := h.runner.Run(r.Context())

	writeJSON(w, http.StatusOK, "success",
		fmt.Sprintf("sync finished: %d new rows appended", summary.RowsAppended))
}

func writeJSON(w http.ResponseWriter, status int, result, message string) {
	metrics.Get().RecordHTTPRequest("/trigger", status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  result,
		"message": message,
	})
}
