package parser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"golang.org/x/time/rate"
)

// claudeProvider calls the Anthropic messages API through the official SDK.
type claudeProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

func newClaudeProvider(config *common.ClaudeConfig, apiKey string, logger arbor.ILogger) *claudeProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if timeout := common.DurationOr(config.Timeout, 30*time.Second); timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	model := config.Model
	if model == "" {
		model = "claude-3-haiku-20240307"
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	interval := common.DurationOr(config.RateLimit, time.Second)

	return &claudeProvider{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		logger:    logger,
	}
}

func (p *claudeProvider) Type() ProviderType {
	return ProviderClaude
}

func (p *claudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}
