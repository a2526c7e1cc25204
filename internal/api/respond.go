package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, detail string) {
	writeJSON(w, logger, status, errorResponse{Detail: detail})
}
