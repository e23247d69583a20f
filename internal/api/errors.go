package api

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/joestump/joe-marks/internal/logger"
)

// ErrorDetail carries the human-readable error message.
type ErrorDetail struct {
	Message string `json:"message"`
}

// ErrorResponse is the nested error envelope used by every structured error
// response except the auth middleware's 401.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{Message: message}})
}

// writeServerError is the terminal sink for failures no component converted
// to a structured response. The underlying error is logged; production masks
// the detail behind a generic message.
func writeServerError(w http.ResponseWriter, log logger.Logger, err error, production bool) {
	log.Error("server error", logger.Error(err))
	message := "server error"
	if !production {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, message)
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
