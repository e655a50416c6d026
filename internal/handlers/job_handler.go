package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// defaultJobListLimit caps GET /api/scraping-jobs responses
const defaultJobListLimit = 50

// JobHandler serves lead-job submission and retrieval
type JobHandler struct {
	config      *common.Config
	credentials interfaces.CredentialsStorage
	leadService interfaces.LeadService
	jobStorage  interfaces.JobStorage
	profiles    interfaces.ProfileStorage
	logger      arbor.ILogger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(config *common.Config, credentials interfaces.CredentialsStorage, leadService interfaces.LeadService, jobStorage interfaces.JobStorage, profiles interfaces.ProfileStorage, logger arbor.ILogger) *JobHandler {
	return &JobHandler{
		config:      config,
		credentials: credentials,
		leadService: leadService,
		jobStorage:  jobStorage,
		profiles:    profiles,
		logger:      logger,
	}
}

// StartScrapingHandler handles POST /api/start-scraping. The query is
// parsed synchronously; the scraping pipeline runs in the background and
// the pending job is returned immediately.
func (h *JobHandler) StartScrapingHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	ctx := r.Context()

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	creds, err := h.credentials.GetCredentials(ctx)
	if err != nil {
		creds = nil
	}
	if !creds.HasLinkedInLogin() {
		WriteError(w, http.StatusBadRequest, "LinkedIn credentials not configured")
		return
	}

	provider := common.LLMProvider(req.Provider)
	if provider == "" {
		provider = h.config.LLM.DefaultProvider
	}
	if _, keyErr := common.ResolveAPIKey(h.config, creds, provider); keyErr != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s API key not configured", provider))
		return
	}

	job, err := h.leadService.SubmitSearch(ctx, &req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to start scraping job")
		WriteError(w, http.StatusInternalServerError, "Failed to start scraping job")
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// ListJobsHandler handles GET /api/scraping-jobs?limit=50, newest first
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := defaultJobListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	jobs, err := h.jobStorage.ListRecentJobs(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list jobs")
		WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []*models.LeadJob{}
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// GetJobHandler handles GET /api/scraping-jobs/{id}
func (h *JobHandler) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	jobID := PathSegment(r, 2)
	if jobID == "" {
		WriteError(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	job, err := h.jobStorage.GetJob(r.Context(), jobID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// GetJobProfilesHandler handles GET /api/scraping-jobs/{id}/profiles,
// returning the job's persisted profiles ordered by engagement score.
func (h *JobHandler) GetJobProfilesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	ctx := r.Context()

	jobID := PathSegment(r, 2)
	if jobID == "" {
		WriteError(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	if _, err := h.jobStorage.GetJob(ctx, jobID); err != nil {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	profiles, err := h.profiles.GetProfilesByJob(ctx, jobID)
	if err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job profiles")
		WriteError(w, http.StatusInternalServerError, "Failed to get job profiles")
		return
	}
	if profiles == nil {
		profiles = []models.CandidateProfile{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":   jobID,
		"profiles": profiles,
		"count":    len(profiles),
	})
}
