package enrich

import (
	"context"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// Service fills contact details onto extracted profiles using the
// Hunter API. Enrichment is best effort: any lookup failure leaves the
// profile as extracted and moves on.
type Service struct {
	config *common.EnrichmentConfig
	client *Client
	logger arbor.ILogger
}

var _ interfaces.EnrichmentService = (*Service)(nil)

// NewService creates an enrichment service from configuration.
func NewService(config *common.EnrichmentConfig, logger arbor.ILogger) *Service {
	opts := []ClientOption{
		WithLogger(logger),
	}
	if config.BaseURL != "" {
		opts = append(opts, WithBaseURL(config.BaseURL))
	}
	if config.RequestsPerSecond > 0 {
		opts = append(opts, WithRateLimit(config.RequestsPerSecond))
	}
	opts = append(opts, WithHTTPClient(&http.Client{
		Timeout: common.DurationOr(config.Timeout, DefaultTimeout),
	}))

	return &Service{
		config: config,
		client: NewClient(opts...),
		logger: logger,
	}
}

// EnrichProfiles resolves company domains and email addresses for each
// profile. Profiles whose lookups fail are returned unchanged.
func (s *Service) EnrichProfiles(ctx context.Context, apiKey string, profiles []models.CandidateProfile) []models.CandidateProfile {
	if !s.config.Enabled || apiKey == "" || len(profiles) == 0 {
		return profiles
	}

	// Companies repeat across profiles, so resolve each one once.
	domains := make(map[string]*DomainSearchResult)
	enriched := 0

	for i := range profiles {
		if ctx.Err() != nil {
			break
		}
		p := &profiles[i]

		company := strings.TrimSpace(p.CompanyName)
		if company == "" || company == "Unknown" {
			continue
		}

		result, seen := domains[company]
		if !seen {
			var err error
			result, err = s.client.DomainSearch(ctx, apiKey, company)
			if err != nil {
				s.logger.Debug().
					Str("company", company).
					Err(err).
					Msg("Domain lookup failed")
				result = nil
			}
			domains[company] = result
		}
		if result == nil || result.Domain == "" {
			continue
		}

		if p.CompanyWebsite == "" {
			p.CompanyWebsite = result.Domain
		}
		if p.Industry == "" && result.Industry != "" {
			p.Industry = result.Industry
		}

		firstName, lastName := splitName(p.FullName)
		if firstName == "" {
			continue
		}

		email, err := s.client.FindEmail(ctx, apiKey, result.Domain, firstName, lastName)
		if err != nil {
			s.logger.Debug().
				Str("profile", p.FullName).
				Err(err).
				Msg("Email lookup failed")
			continue
		}
		if email.Email != "" {
			p.Email = email.Email
			enriched++
		}
		if email.PhoneNumber != "" && p.Phone == "" {
			p.Phone = email.PhoneNumber
		}
	}

	s.logger.Info().
		Int("profiles", len(profiles)).
		Int("enriched", enriched).
		Msg("Profile enrichment complete")

	return profiles
}

// splitName breaks a display name into first and last parts for the
// email finder. Middle names fold into the last name.
func splitName(fullName string) (string, string) {
	name := strings.TrimSpace(fullName)
	if name == "" || name == "Unknown" {
		return "", ""
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
