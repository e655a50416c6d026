package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// CredentialsHandler manages the single stored credentials record
type CredentialsHandler struct {
	storage interfaces.CredentialsStorage
	logger  arbor.ILogger
}

// NewCredentialsHandler creates a new CredentialsHandler
func NewCredentialsHandler(storage interfaces.CredentialsStorage, logger arbor.ILogger) *CredentialsHandler {
	return &CredentialsHandler{
		storage: storage,
		logger:  logger,
	}
}

// SaveCredentialsHandler handles POST /api/credentials.
// Incoming fields are merged onto the stored record: empty or masked
// values leave the stored secret untouched, so clients can round-trip
// the masked GET response when editing.
func (h *CredentialsHandler) SaveCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var incoming models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	stored, err := h.storage.GetCredentials(ctx)
	if err != nil || stored == nil {
		stored = &models.Credentials{}
	}
	stored.MergeFrom(&incoming)

	if err := h.storage.SaveCredentials(ctx, stored); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save credentials")
		WriteError(w, http.StatusInternalServerError, "Failed to save credentials")
		return
	}

	h.logger.Info().
		Bool("linkedin_login", stored.HasLinkedInLogin()).
		Bool("openai_key", stored.OpenAIAPIKey != "").
		Bool("claude_key", stored.ClaudeAPIKey != "").
		Bool("gemini_key", stored.GeminiAPIKey != "").
		Bool("hunter_key", stored.HunterAPIKey != "").
		Msg("Credentials updated")

	WriteJSON(w, http.StatusOK, stored.Masked())
}

// GetCredentialsHandler handles GET /api/credentials. Secrets come back
// masked; empty fields stay empty so clients can tell what is configured.
func (h *CredentialsHandler) GetCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	stored, err := h.storage.GetCredentials(r.Context())
	if err != nil || stored == nil {
		WriteJSON(w, http.StatusOK, models.Credentials{})
		return
	}

	WriteJSON(w, http.StatusOK, stored.Masked())
}
