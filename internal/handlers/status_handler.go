package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// StatusHandler serves the service summary, health and version endpoints
type StatusHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(storage interfaces.StorageManager, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		storage: storage,
		logger:  logger,
	}
}

// RootHandler handles GET /api/
func (h *StatusHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()
	total, err := h.storage.JobStorage().CountJobs(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count jobs")
	}
	running, _ := h.storage.JobStorage().CountJobsByStatus(ctx, models.JobStatusRunning)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"service":      "indago",
		"message":      "LinkedIn Lead Generation Tool API",
		"version":      common.GetVersion(),
		"total_jobs":   total,
		"running_jobs": running,
	})
}

// HealthHandler handles GET /api/health
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()
	status := "healthy"

	totalJobs, err := h.storage.JobStorage().CountJobs(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check storage probe failed")
		status = "degraded"
	}
	pending, _ := h.storage.JobStorage().CountJobsByStatus(ctx, models.JobStatusPending)
	running, _ := h.storage.JobStorage().CountJobsByStatus(ctx, models.JobStatusRunning)
	completed, _ := h.storage.JobStorage().CountJobsByStatus(ctx, models.JobStatusCompleted)
	failed, _ := h.storage.JobStorage().CountJobsByStatus(ctx, models.JobStatusFailed)
	profiles, _ := h.storage.ProfileStorage().CountProfiles(ctx)

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]interface{}{
		"status":  status,
		"version": common.GetVersion(),
		"jobs": map[string]int{
			"total":     totalJobs,
			"pending":   pending,
			"running":   running,
			"completed": completed,
			"failed":    failed,
		},
		"profiles": profiles,
	})
}

// VersionHandler handles GET /api/version
func (h *StatusHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *StatusHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
