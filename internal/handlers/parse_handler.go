package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
)

// ParseHandler serves the synchronous query-parse preview endpoint
type ParseHandler struct {
	config      *common.Config
	credentials interfaces.CredentialsStorage
	leadService interfaces.LeadService
	logger      arbor.ILogger
}

// NewParseHandler creates a new ParseHandler
func NewParseHandler(config *common.Config, credentials interfaces.CredentialsStorage, leadService interfaces.LeadService, logger arbor.ILogger) *ParseHandler {
	return &ParseHandler{
		config:      config,
		credentials: credentials,
		leadService: leadService,
		logger:      logger,
	}
}

// ParseQueryHandler handles POST /api/parse-query. It parses free text
// into structured search criteria without starting a job.
func (h *ParseHandler) ParseQueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	ctx := r.Context()

	var req struct {
		Query    string `json:"query"`
		Provider string `json:"llm_provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	provider := common.LLMProvider(req.Provider)
	if provider == "" {
		provider = h.config.LLM.DefaultProvider
	}

	creds, err := h.credentials.GetCredentials(ctx)
	if err != nil {
		creds = nil
	}
	if _, keyErr := common.ResolveAPIKey(h.config, creds, provider); keyErr != nil {
		if creds == nil {
			WriteError(w, http.StatusBadRequest, "No credentials configured")
		} else {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s API key not configured", provider))
		}
		return
	}

	parsed, err := h.leadService.ParseQuery(ctx, req.Query, string(provider))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, parsed)
}
