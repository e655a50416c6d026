package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/services/export"
)

// ExportHandler serves lead exports as file downloads
type ExportHandler struct {
	jobStorage interfaces.JobStorage
	exporter   interfaces.ExportService
	logger     arbor.ILogger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(jobStorage interfaces.JobStorage, exporter interfaces.ExportService, logger arbor.ILogger) *ExportHandler {
	return &ExportHandler{
		jobStorage: jobStorage,
		exporter:   exporter,
		logger:     logger,
	}
}

// ExportLeadsHandler handles GET /api/export-csv/{job_id}?format=csv|xlsx|pdf.
// The default format is CSV; the response is always an attachment.
func (h *ExportHandler) ExportLeadsHandler(w http.ResponseWriter, r *http.Request) {
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

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}

	var data []byte
	switch format {
	case "csv":
		data, err = h.exporter.LeadsCSV(job)
	case "xlsx":
		data, err = h.exporter.LeadsXLSX(job)
	case "pdf":
		data, err = h.exporter.LeadsPDF(job)
	default:
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format: %s", format))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, export.ErrJobNotCompleted):
			WriteError(w, http.StatusBadRequest, "Job not completed")
		case errors.Is(err, export.ErrNoProfiles):
			WriteError(w, http.StatusBadRequest, "No profiles found")
		default:
			h.logger.Error().Err(err).Str("job_id", jobID).Str("format", format).Msg("Export failed")
			WriteError(w, http.StatusInternalServerError, "Failed to generate export")
		}
		return
	}

	filename := export.Filename(jobID, format)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
