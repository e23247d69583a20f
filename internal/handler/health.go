package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/joe-marks/internal/build"
)

// instanceID identifies this process in health responses for the life of the
// process.
var instanceID = uuid.NewString()

type healthzResponse struct {
	Status   string `json:"status"`
	Instance string `json:"instance"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Branch   string `json:"branch"`
}

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports process liveness plus build identity. It never touches the
// database.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(healthzResponse{
		Status:   "ok",
		Instance: instanceID,
		Version:  build.Version,
		Commit:   build.Commit,
		Branch:   build.Branch,
	})
}

// Readyz pings the database; 503 until it answers.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.db.PingContext(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false})
		return
	}
	_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true})
}
