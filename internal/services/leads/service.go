package leads

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// Service orchestrates lead-generation jobs: it validates submissions,
// parses queries synchronously, and drives the scraping pipeline in a
// background goroutine per job.
type Service struct {
	config    *common.Config
	logger    arbor.ILogger
	parser    interfaces.QueryParser
	launcher  interfaces.SessionLauncher
	auth      interfaces.Authenticator
	extractor interfaces.LeadExtractor
	enricher  interfaces.EnrichmentService
	storage   interfaces.StorageManager
	events    interfaces.EventService
	validate  *validator.Validate

	wg     sync.WaitGroup
	active int64
}

var _ interfaces.LeadService = (*Service)(nil)

// NewService wires the lead orchestrator
func NewService(
	config *common.Config,
	logger arbor.ILogger,
	parser interfaces.QueryParser,
	launcher interfaces.SessionLauncher,
	auth interfaces.Authenticator,
	extractor interfaces.LeadExtractor,
	enricher interfaces.EnrichmentService,
	storage interfaces.StorageManager,
	events interfaces.EventService,
) *Service {
	return &Service{
		config:    config,
		logger:    logger,
		parser:    parser,
		launcher:  launcher,
		auth:      auth,
		extractor: extractor,
		enricher:  enricher,
		storage:   storage,
		events:    events,
		validate:  validator.New(),
	}
}

// ParseQuery resolves the provider's API key and parses free text into
// structured criteria without starting a job
func (s *Service) ParseQuery(ctx context.Context, freeText string, provider string) (models.StructuredQuery, error) {
	if strings.TrimSpace(freeText) == "" {
		return models.StructuredQuery{}, fmt.Errorf("query is required")
	}

	providerType := common.LLMProvider(provider)
	if providerType == "" {
		providerType = s.config.LLM.DefaultProvider
	}

	creds, err := s.storage.CredentialsStorage().GetCredentials(ctx)
	if err != nil {
		creds = nil
	}

	apiKey, err := common.ResolveAPIKey(s.config, creds, providerType)
	if err != nil {
		return models.StructuredQuery{}, fmt.Errorf("%s API key not configured", providerType)
	}

	return s.parser.Parse(ctx, freeText, string(providerType), apiKey), nil
}

// SubmitSearch validates the request, parses the query, persists a
// pending job and launches the scraping pipeline in the background
func (s *Service) SubmitSearch(ctx context.Context, req *models.SearchRequest) (*models.LeadJob, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	creds, err := s.storage.CredentialsStorage().GetCredentials(ctx)
	if err != nil || !creds.HasLinkedInLogin() {
		return nil, fmt.Errorf("LinkedIn credentials not configured")
	}

	providerType := common.LLMProvider(req.Provider)
	if providerType == "" {
		providerType = s.config.LLM.DefaultProvider
	}
	apiKey, err := common.ResolveAPIKey(s.config, creds, providerType)
	if err != nil {
		return nil, fmt.Errorf("%s API key not configured", providerType)
	}

	// Parse before persisting so the stored job always carries usable
	// criteria. Parse never fails: provider errors yield the fallback.
	parsed := s.parser.Parse(ctx, req.Query, string(providerType), apiKey)

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.config.Scraper.DefaultMaxResults
	}

	job := &models.LeadJob{
		ID:            common.NewJobID(),
		OriginalQuery: req.Query,
		ParsedQuery:   parsed,
		Provider:      string(providerType),
		MaxResults:    maxResults,
		Status:        models.JobStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.storage.JobStorage().CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Str("provider", job.Provider).
		Int("max_results", job.MaxResults).
		Msg("Lead job submitted")

	s.publishJobEvent(interfaces.EventJobSubmitted, job)

	// Snapshot the credentials: the pipeline must not observe edits made
	// while it runs.
	credsCopy := *creds

	s.wg.Add(1)
	atomic.AddInt64(&s.active, 1)
	go s.runPipeline(*job, &credsCopy)

	return job, nil
}

// ActiveJobs reports how many pipelines are currently in flight
func (s *Service) ActiveJobs() int {
	return int(atomic.LoadInt64(&s.active))
}

// Wait blocks until in-flight pipelines finish or the context ends
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publishJobEvent emits a job lifecycle event with the job as payload
func (s *Service) publishJobEvent(eventType interfaces.EventType, job *models.LeadJob) {
	if s.events == nil {
		return
	}
	event := interfaces.Event{Type: eventType, Payload: job}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to publish job event")
	}
}
