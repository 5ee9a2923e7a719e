package health

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"creatorvault/pkg/logger"
)

const version = "0.1.0"

type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Health reports plain API availability.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "creatorvault-backend",
		"version": version,
	})
}

// HealthDB verifies database connectivity with a SELECT 1.
func (h *HealthHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(); err != nil {
		logger.Sugar.Errorf("Database health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "error",
			"database": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}

// Ready is the readiness probe for container orchestration.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(); err != nil {
		logger.Sugar.Warnf("Readiness check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"checks": map[string]string{"api": "ok", "database": "failed"},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"checks": map[string]string{"api": "ok", "database": "ok"},
	})
}

func (h *HealthHandler) ping() error {
	var one int
	return h.DB.QueryRow("SELECT 1").Scan(&one)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
