package parser

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// Service parses free-text lead requests with the selected provider
// and guarantees a usable query on every path.
type Service struct {
	config *common.LLMConfig
	logger arbor.ILogger

	mu        sync.Mutex
	providers map[ProviderType]Provider
	keys      map[ProviderType]string
}

// NewService creates a query parser service
func NewService(config *common.LLMConfig, logger arbor.ILogger) *Service {
	return &Service{
		config:    config,
		logger:    logger,
		providers: make(map[ProviderType]Provider),
		keys:      make(map[ProviderType]string),
	}
}

var _ interfaces.QueryParser = (*Service)(nil)

// provider returns a cached provider instance, rebuilding it when the
// API key changed since the last call. Caching keeps one rate limiter
// per provider instead of one per request.
func (s *Service) provider(providerType ProviderType, apiKey string) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.providers[providerType]; ok && s.keys[providerType] == apiKey {
		return p, nil
	}

	p, err := newProvider(providerType, apiKey, s.config, s.logger)
	if err != nil {
		return nil, err
	}
	s.providers[providerType] = p
	s.keys[providerType] = apiKey
	return p, nil
}

// Parse converts free text into structured search criteria. It never
// fails: provider errors, malformed completions and validation
// shortfalls all degrade to the static fallback query.
func (s *Service) Parse(ctx context.Context, freeText string, provider string, apiKey string) models.StructuredQuery {
	providerType, err := resolveProviderType(provider, s.config)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Unknown parse provider, using fallback query")
		return models.FallbackQuery()
	}

	p, err := s.provider(providerType, apiKey)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", string(providerType)).Msg("Provider unavailable, using fallback query")
		return models.FallbackQuery()
	}

	completion, err := p.Complete(ctx, buildPrompt(freeText))
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", string(providerType)).Msg("Query parse failed, using fallback query")
		return models.FallbackQuery()
	}

	query, err := decodeStructuredQuery(completion)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", string(providerType)).Msg("Unusable completion, using fallback query")
		return models.FallbackQuery()
	}

	s.logger.Debug().
		Str("provider", string(providerType)).
		Int("roles", len(query.Roles)).
		Int("locations", len(query.Locations)).
		Msg("Parsed lead query")

	return query
}
