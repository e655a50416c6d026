package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Hunter API.
	DefaultBaseURL = "https://api.hunter.io"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 2
)

// Client is a Hunter.io API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Hunter API client. The API key travels per
// call because it lives in stored credentials and can change at runtime.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DomainSearchResult is the company slice of a domain-search response.
type DomainSearchResult struct {
	Domain       string `json:"domain"`
	Organization string `json:"organization"`
	Industry     string `json:"industry"`
}

// EmailFinderResult is the contact slice of an email-finder response.
type EmailFinderResult struct {
	Email       string  `json:"email"`
	Score       float64 `json:"score"`
	PhoneNumber string  `json:"phone_number"`
}

// DomainSearch looks a company up by name and returns its primary
// domain and organization details.
func (c *Client) DomainSearch(ctx context.Context, apiKey, company string) (*DomainSearchResult, error) {
	params := url.Values{}
	params.Set("company", company)

	var result struct {
		Data DomainSearchResult `json:"data"`
	}
	if err := c.get(ctx, "/v2/domain-search", apiKey, params, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// FindEmail resolves a person's most likely address at a domain.
func (c *Client) FindEmail(ctx context.Context, apiKey, domain, firstName, lastName string) (*EmailFinderResult, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("first_name", firstName)
	params.Set("last_name", lastName)

	var result struct {
		Data EmailFinderResult `json:"data"`
	}
	if err := c.get(ctx, "/v2/email-finder", apiKey, params, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path, apiKey string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Hunter API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Hunter API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
