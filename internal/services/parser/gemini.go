package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiProvider calls the Google Gemini API through the genai SDK.
// The client is created per call because genai requires a context at
// construction time.
type geminiProvider struct {
	apiKey  string
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  arbor.ILogger
}

func newGeminiProvider(config *common.GeminiConfig, apiKey string, logger arbor.ILogger) *geminiProvider {
	model := config.Model
	if model == "" {
		model = "gemini-pro"
	}

	interval := common.DurationOr(config.RateLimit, 4*time.Second)

	return &geminiProvider{
		apiKey:  apiKey,
		model:   model,
		timeout: common.DurationOr(config.Timeout, 30*time.Second),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

func (p *geminiProvider) Type() ProviderType {
	return ProviderGemini
}

func (p *geminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := genai.NewClient(callCtx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(callCtx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	return text, nil
}
