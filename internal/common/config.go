package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"

	"github.com/ternarybob/indago/internal/models"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Browser     BrowserConfig    `toml:"browser"`
	Scraper     ScraperConfig    `toml:"scraper"`
	LLM         LLMConfig        `toml:"llm"`
	Jobs        JobsConfig       `toml:"jobs"`
	Enrichment  EnrichmentConfig `toml:"enrichment"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Type   string       `toml:"type"` // Only "badger" is supported
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// BrowserConfig contains chromedp launch configuration
type BrowserConfig struct {
	Headless      bool          `toml:"headless"`       // Run without a visible window (default: true)
	ExecPath      string        `toml:"exec_path"`      // Explicit browser binary; empty uses chromedp discovery
	UserAgent     string        `toml:"user_agent"`     // Client identity presented to the target site
	LaunchTimeout time.Duration `toml:"launch_timeout"` // Per-configuration launch probe timeout
}

// ScraperConfig contains search/extraction behavior configuration
type ScraperConfig struct {
	DefaultMaxResults int           `toml:"default_max_results"` // Result cap when the request omits one
	NavigationTimeout time.Duration `toml:"navigation_timeout"`  // Per-navigation wait bound
	SettleWait        time.Duration `toml:"settle_wait"`         // Post-navigation render settle time
	MinLoginDelay     time.Duration `toml:"min_login_delay"`     // Pacing before submitting the login form
	MaxLoginDelay     time.Duration `toml:"max_login_delay"`
	MinPageDelay      time.Duration `toml:"min_page_delay"` // Pacing between result pages
	MaxPageDelay      time.Duration `toml:"max_page_delay"`
}

// LLMProvider identifies which language-model backend parses queries
type LLMProvider string

const (
	// LLMProviderOpenAI uses the OpenAI chat completions API
	LLMProviderOpenAI LLMProvider = "openai"
	// LLMProviderClaude uses the Anthropic messages API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses the Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig contains configuration for all query-parsing providers
type LLMConfig struct {
	DefaultProvider LLMProvider  `toml:"default_provider"` // "openai", "claude" or "gemini" (default: "openai")
	OpenAI          OpenAIConfig `toml:"openai"`
	Claude          ClaudeConfig `toml:"claude"`
	Gemini          GeminiConfig `toml:"gemini"`
}

// OpenAIConfig contains OpenAI chat completions configuration
type OpenAIConfig struct {
	APIKey      string  `toml:"api_key"`     // Fallback key; env and stored credentials take priority
	Model       string  `toml:"model"`       // Default: "gpt-3.5-turbo"
	BaseURL     string  `toml:"base_url"`    // Override for testing (default: "https://api.openai.com")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.1)
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "1s")
	Timeout     string  `toml:"timeout"`     // Request timeout as duration string (default: "30s")
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`      // Default: "claude-3-haiku-20240307"
	MaxTokens int    `toml:"max_tokens"` // Maximum tokens in response (default: 1000)
	BaseURL   string `toml:"base_url"`   // Override for testing
	RateLimit string `toml:"rate_limit"` // Default: "1s"
	Timeout   string `toml:"timeout"`    // Default: "30s"
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`      // Default: "gemini-pro"
	RateLimit string `toml:"rate_limit"` // Default: "4s" (15 RPM free tier)
	Timeout   string `toml:"timeout"`    // Default: "30s"
}

// JobsConfig contains job lifecycle configuration
type JobsConfig struct {
	MaxDuration     string `toml:"max_duration"`     // Upper bound on one pipeline run (default: "10m")
	StaleAfter      string `toml:"stale_after"`      // Running jobs without a heartbeat for this long are failed (default: "10m")
	RetentionDays   int    `toml:"retention_days"`   // Terminal jobs older than this are deleted (default: 30)
	CleanupSchedule string `toml:"cleanup_schedule"` // Cron schedule for the maintenance sweep (default: hourly)
}

// EnrichmentConfig contains Hunter.io email enrichment configuration
type EnrichmentConfig struct {
	Enabled           bool   `toml:"enabled"`             // Requires a hunter_api_key in credentials
	BaseURL           string `toml:"base_url"`            // Override for testing (default: "https://api.hunter.io")
	RequestsPerSecond int    `toml:"requests_per_second"` // Rate limit toward the Hunter API (default: 2)
	Timeout           string `toml:"timeout"`             // Request timeout (default: "15s")
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in indago.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Type: "badger",
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Browser: BrowserConfig{
			Headless:      true,
			ExecPath:      "",
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			LaunchTimeout: 20 * time.Second,
		},
		Scraper: ScraperConfig{
			DefaultMaxResults: 50,
			NavigationTimeout: 30 * time.Second,
			SettleWait:        3 * time.Second,
			MinLoginDelay:     1 * time.Second,
			MaxLoginDelay:     3 * time.Second,
			MinPageDelay:      2 * time.Second,
			MaxPageDelay:      4 * time.Second,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderOpenAI,
			OpenAI: OpenAIConfig{
				Model:       "gpt-3.5-turbo",
				BaseURL:     "https://api.openai.com",
				Temperature: 0.1,
				RateLimit:   "1s",
				Timeout:     "30s",
			},
			Claude: ClaudeConfig{
				Model:     "claude-3-haiku-20240307",
				MaxTokens: 1000,
				RateLimit: "1s",
				Timeout:   "30s",
			},
			Gemini: GeminiConfig{
				Model:     "gemini-pro",
				RateLimit: "4s",
				Timeout:   "30s",
			},
		},
		Jobs: JobsConfig{
			MaxDuration:     "10m",
			StaleAfter:      "10m",
			RetentionDays:   30,
			CleanupSchedule: "0 * * * *",
		},
		Enrichment: EnrichmentConfig{
			Enabled:           true,
			BaseURL:           "https://api.hunter.io",
			RequestsPerSecond: 2,
			Timeout:           "15s",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files, later files overriding
// earlier ones. Priority: CLI flags > environment variables > last config file
// > ... > first config file > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INDAGO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("INDAGO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("INDAGO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("INDAGO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("INDAGO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("INDAGO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Browser configuration
	if headless := os.Getenv("INDAGO_BROWSER_HEADLESS"); headless != "" {
		if h, err := strconv.ParseBool(headless); err == nil {
			config.Browser.Headless = h
		}
	}
	if execPath := os.Getenv("INDAGO_BROWSER_EXEC_PATH"); execPath != "" {
		config.Browser.ExecPath = execPath
	}
	if userAgent := os.Getenv("INDAGO_BROWSER_USER_AGENT"); userAgent != "" {
		config.Browser.UserAgent = userAgent
	}
	if launchTimeout := os.Getenv("INDAGO_BROWSER_LAUNCH_TIMEOUT"); launchTimeout != "" {
		if lt, err := time.ParseDuration(launchTimeout); err == nil {
			config.Browser.LaunchTimeout = lt
		}
	}

	// Scraper configuration
	if maxResults := os.Getenv("INDAGO_SCRAPER_DEFAULT_MAX_RESULTS"); maxResults != "" {
		if mr, err := strconv.Atoi(maxResults); err == nil {
			config.Scraper.DefaultMaxResults = mr
		}
	}
	if navTimeout := os.Getenv("INDAGO_SCRAPER_NAVIGATION_TIMEOUT"); navTimeout != "" {
		if nt, err := time.ParseDuration(navTimeout); err == nil {
			config.Scraper.NavigationTimeout = nt
		}
	}

	// LLM provider configuration
	if provider := os.Getenv("INDAGO_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("INDAGO_OPENAI_API_KEY"); apiKey != "" {
		config.LLM.OpenAI.APIKey = apiKey // INDAGO_ prefix takes priority
	}
	if model := os.Getenv("INDAGO_OPENAI_MODEL"); model != "" {
		config.LLM.OpenAI.Model = model
	}
	if baseURL := os.Getenv("INDAGO_OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.LLM.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("INDAGO_CLAUDE_API_KEY"); apiKey != "" {
		config.LLM.Claude.APIKey = apiKey // INDAGO_ prefix takes priority
	}
	if model := os.Getenv("INDAGO_CLAUDE_MODEL"); model != "" {
		config.LLM.Claude.Model = model
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.LLM.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("INDAGO_GEMINI_API_KEY"); apiKey != "" {
		config.LLM.Gemini.APIKey = apiKey // INDAGO_ prefix takes priority
	}
	if model := os.Getenv("INDAGO_GEMINI_MODEL"); model != "" {
		config.LLM.Gemini.Model = model
	}

	// Jobs configuration
	if maxDuration := os.Getenv("INDAGO_JOBS_MAX_DURATION"); maxDuration != "" {
		if _, err := time.ParseDuration(maxDuration); err == nil {
			config.Jobs.MaxDuration = maxDuration
		}
	}
	if staleAfter := os.Getenv("INDAGO_JOBS_STALE_AFTER"); staleAfter != "" {
		if _, err := time.ParseDuration(staleAfter); err == nil {
			config.Jobs.StaleAfter = staleAfter
		}
	}
	if retentionDays := os.Getenv("INDAGO_JOBS_RETENTION_DAYS"); retentionDays != "" {
		if rd, err := strconv.Atoi(retentionDays); err == nil && rd > 0 {
			config.Jobs.RetentionDays = rd
		}
	}
	if schedule := os.Getenv("INDAGO_JOBS_CLEANUP_SCHEDULE"); schedule != "" {
		config.Jobs.CleanupSchedule = schedule
	}

	// Enrichment configuration
	if enabled := os.Getenv("INDAGO_ENRICHMENT_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Enrichment.Enabled = e
		}
	}
	if baseURL := os.Getenv("INDAGO_ENRICHMENT_BASE_URL"); baseURL != "" {
		config.Enrichment.BaseURL = baseURL
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string, dataDir string, logLevel string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if dataDir != "" {
		config.Storage.Badger.Path = dataDir
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
}

// ResolveAPIKey resolves the API key for an LLM provider.
// Resolution order: environment variables → stored credentials → config fallback → error.
// This ensures INDAGO_* environment variables always take precedence over
// anything a user saved through the credentials endpoint.
func ResolveAPIKey(config *Config, creds *models.Credentials, provider LLMProvider) (string, error) {
	envNames := map[LLMProvider][]string{
		LLMProviderOpenAI: {"INDAGO_OPENAI_API_KEY", "OPENAI_API_KEY"},
		LLMProviderClaude: {"INDAGO_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
		LLMProviderGemini: {"INDAGO_GEMINI_API_KEY", "GEMINI_API_KEY"},
	}

	names, ok := envNames[provider]
	if !ok {
		return "", fmt.Errorf("unknown LLM provider: %s", provider)
	}
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value, nil
		}
	}

	if creds != nil {
		if key := creds.APIKeyFor(string(provider)); key != "" {
			return key, nil
		}
	}

	var configFallback string
	switch provider {
	case LLMProviderOpenAI:
		configFallback = config.LLM.OpenAI.APIKey
	case LLMProviderClaude:
		configFallback = config.LLM.Claude.APIKey
	case LLMProviderGemini:
		configFallback = config.LLM.Gemini.APIKey
	}
	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("%s API key not found in environment, credentials, or config", provider)
}

// ValidateCronSchedule validates a standard 5-field cron expression
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// DurationOr parses a duration string, returning the fallback when the
// value is empty or invalid
func DurationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return fallback
}

// MaxJobDuration returns the configured pipeline deadline, falling back to 10m
func (c *Config) MaxJobDuration() time.Duration {
	if d, err := time.ParseDuration(c.Jobs.MaxDuration); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}

// StaleJobCutoff returns the heartbeat age after which a running job is
// considered abandoned
func (c *Config) StaleJobCutoff() time.Duration {
	if d, err := time.ParseDuration(c.Jobs.StaleAfter); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
