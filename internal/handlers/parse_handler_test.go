package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

func newTestParseHandler(t *testing.T, store interfaces.StorageManager, leadService interfaces.LeadService) *ParseHandler {
	t.Helper()
	return NewParseHandler(common.NewDefaultConfig(), store.CredentialsStorage(), leadService, arbor.NewLogger())
}

func TestParseQueryHandler_Success(t *testing.T) {
	store := newHandlerStorage(t)
	saveTestCredentials(t, store, &models.Credentials{OpenAIAPIKey: "sk-test"})

	mock := &mockLeadService{
		parseFunc: func(ctx context.Context, freeText, provider string) (models.StructuredQuery, error) {
			return models.StructuredQuery{
				Roles:           []string{"CTO"},
				Locations:       []string{"Berlin"},
				Industries:      []string{"fintech"},
				SeniorityLevels: []string{"CXO"},
			}, nil
		},
	}
	handler := newTestParseHandler(t, store, mock)

	body := `{"query": "find fintech CTOs in Berlin", "llm_provider": "openai"}`
	req := httptest.NewRequest("POST", "/api/parse-query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ParseQueryHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var parsed models.StructuredQuery
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(parsed.Roles) != 1 || parsed.Roles[0] != "CTO" {
		t.Errorf("Unexpected roles: %v", parsed.Roles)
	}
	if len(parsed.Locations) != 1 || parsed.Locations[0] != "Berlin" {
		t.Errorf("Unexpected locations: %v", parsed.Locations)
	}
}

func TestParseQueryHandler_NoCredentials(t *testing.T) {
	store := newHandlerStorage(t)
	handler := newTestParseHandler(t, store, &mockLeadService{})

	body := `{"query": "find fintech CTOs in Berlin"}`
	req := httptest.NewRequest("POST", "/api/parse-query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ParseQueryHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if msg := decodeErrorBody(t, rec); msg != "No credentials configured" {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

func TestParseQueryHandler_MissingProviderKey(t *testing.T) {
	store := newHandlerStorage(t)
	saveTestCredentials(t, store, &models.Credentials{LinkedInEmail: "user@example.com"})
	handler := newTestParseHandler(t, store, &mockLeadService{})

	body := `{"query": "find fintech CTOs in Berlin", "llm_provider": "openai"}`
	req := httptest.NewRequest("POST", "/api/parse-query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ParseQueryHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if msg := decodeErrorBody(t, rec); msg != "openai API key not configured" {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

func TestParseQueryHandler_MethodNotAllowed(t *testing.T) {
	store := newHandlerStorage(t)
	handler := newTestParseHandler(t, store, &mockLeadService{})

	req := httptest.NewRequest("GET", "/api/parse-query", nil)
	rec := httptest.NewRecorder()
	handler.ParseQueryHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected status 405, got %d", rec.Code)
	}
}
