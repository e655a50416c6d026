package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/models"
)

func testEnrichConfig(baseURL string) *common.EnrichmentConfig {
	return &common.EnrichmentConfig{
		Enabled:           true,
		BaseURL:           baseURL,
		RequestsPerSecond: 100,
		Timeout:           "5s",
	}
}

func hunterStub(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt64(requests, 1)
		}
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/v2/domain-search":
			company := r.URL.Query().Get("company")
			if company == "Stealth Startup" {
				fmt.Fprint(w, `{"data": {"domain": "", "organization": "", "industry": ""}}`)
				return
			}
			fmt.Fprintf(w, `{"data": {"domain": "acme.com", "organization": "%s", "industry": "Software"}}`, company)
		case "/v2/email-finder":
			first := r.URL.Query().Get("first_name")
			last := r.URL.Query().Get("last_name")
			if first == "Ghost" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"data": {"email": "%s.%s@acme.com", "score": 92, "phone_number": "+1 555 0100"}}`, first, last)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestEnrichProfilesFillsContactDetails(t *testing.T) {
	server := hunterStub(t, nil)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{FullName: "Jane Smith", CompanyName: "Acme Corp"},
	}

	enriched := service.EnrichProfiles(context.Background(), "hk-test", profiles)

	if enriched[0].Email != "Jane.Smith@acme.com" {
		t.Errorf("expected email Jane.Smith@acme.com, got %q", enriched[0].Email)
	}
	if enriched[0].CompanyWebsite != "acme.com" {
		t.Errorf("expected company website acme.com, got %q", enriched[0].CompanyWebsite)
	}
	if enriched[0].Industry != "Software" {
		t.Errorf("expected industry Software, got %q", enriched[0].Industry)
	}
	if enriched[0].Phone != "+1 555 0100" {
		t.Errorf("expected phone to be filled, got %q", enriched[0].Phone)
	}
}

func TestEnrichProfilesKeepsExtractedValues(t *testing.T) {
	server := hunterStub(t, nil)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{
			FullName:       "Jane Smith",
			CompanyName:    "Acme Corp",
			CompanyWebsite: "www.acme-corp.example",
			Industry:       "Manufacturing",
		},
	}

	enriched := service.EnrichProfiles(context.Background(), "hk-test", profiles)

	if enriched[0].CompanyWebsite != "www.acme-corp.example" {
		t.Errorf("extracted website was overwritten: %q", enriched[0].CompanyWebsite)
	}
	if enriched[0].Industry != "Manufacturing" {
		t.Errorf("extracted industry was overwritten: %q", enriched[0].Industry)
	}
	if enriched[0].Email == "" {
		t.Error("expected email to be filled alongside kept fields")
	}
}

func TestEnrichProfilesSurvivesLookupFailures(t *testing.T) {
	server := hunterStub(t, nil)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{FullName: "Ghost Writer", CompanyName: "Acme Corp"},
		{FullName: "Jane Smith", CompanyName: "Stealth Startup"},
		{FullName: "John Doe", CompanyName: "Acme Corp"},
	}

	enriched := service.EnrichProfiles(context.Background(), "hk-test", profiles)

	if len(enriched) != 3 {
		t.Fatalf("expected all profiles back, got %d", len(enriched))
	}
	if enriched[0].Email != "" {
		t.Errorf("email finder failure should leave email empty, got %q", enriched[0].Email)
	}
	if enriched[1].Email != "" || enriched[1].CompanyWebsite != "" {
		t.Error("profile with no resolvable domain should pass through untouched")
	}
	if enriched[2].Email != "John.Doe@acme.com" {
		t.Errorf("later profiles should still enrich, got %q", enriched[2].Email)
	}
}

func TestEnrichProfilesSkipsUnknownCompanies(t *testing.T) {
	var requests int64
	server := hunterStub(t, &requests)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{FullName: "Jane Smith", CompanyName: "Unknown"},
		{FullName: "John Doe", CompanyName: ""},
	}

	service.EnrichProfiles(context.Background(), "hk-test", profiles)

	if got := atomic.LoadInt64(&requests); got != 0 {
		t.Errorf("expected no API calls for unknown companies, got %d", got)
	}
}

func TestEnrichProfilesReusesDomainLookups(t *testing.T) {
	var requests int64
	server := hunterStub(t, &requests)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{FullName: "Jane Smith", CompanyName: "Acme Corp"},
		{FullName: "John Doe", CompanyName: "Acme Corp"},
		{FullName: "Mary Major", CompanyName: "Acme Corp"},
	}

	service.EnrichProfiles(context.Background(), "hk-test", profiles)

	// One domain search plus one email finder call per profile.
	if got := atomic.LoadInt64(&requests); got != 4 {
		t.Errorf("expected 4 API calls with cached domain, got %d", got)
	}
}

func TestEnrichProfilesDisabled(t *testing.T) {
	var requests int64
	server := hunterStub(t, &requests)
	defer server.Close()

	config := testEnrichConfig(server.URL)
	config.Enabled = false
	service := NewService(config, arbor.NewLogger())

	profiles := []models.CandidateProfile{
		{FullName: "Jane Smith", CompanyName: "Acme Corp"},
	}
	enriched := service.EnrichProfiles(context.Background(), "hk-test", profiles)

	if atomic.LoadInt64(&requests) != 0 {
		t.Error("disabled service should not call the API")
	}
	if enriched[0].Email != "" {
		t.Errorf("disabled service should not modify profiles, got email %q", enriched[0].Email)
	}
}

func TestEnrichProfilesWithoutAPIKey(t *testing.T) {
	var requests int64
	server := hunterStub(t, &requests)
	defer server.Close()

	service := NewService(testEnrichConfig(server.URL), arbor.NewLogger())
	profiles := []models.CandidateProfile{
		{FullName: "Jane Smith", CompanyName: "Acme Corp"},
	}

	service.EnrichProfiles(context.Background(), "", profiles)

	if atomic.LoadInt64(&requests) != 0 {
		t.Error("missing API key should skip enrichment entirely")
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		fullName string
		first    string
		last     string
	}{
		{"Jane Smith", "Jane", "Smith"},
		{"Jane van der Berg", "Jane", "van der Berg"},
		{"Prince", "Prince", ""},
		{"  Jane   Smith  ", "Jane", "Smith"},
		{"Unknown", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		first, last := splitName(tt.fullName)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)", tt.fullName, first, last, tt.first, tt.last)
		}
	}
}
