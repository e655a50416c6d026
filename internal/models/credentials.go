package models

import (
	"time"
)

// MaskedSecret replaces stored secret values in API responses
const MaskedSecret = "••••••••"

// Credentials is the single stored bag of secrets: the LinkedIn login pair,
// an optional authenticated session cookie, and per-provider API keys.
// The pipeline receives a snapshot per job; secrets are never logged.
type Credentials struct {
	LinkedInEmail    string `json:"linkedin_email,omitempty"`
	LinkedInPassword string `json:"linkedin_password,omitempty"`
	// SessionCookie is an optional li_at cookie value. When present the
	// authenticator injects it and only falls back to the form login if
	// the cookie no longer verifies.
	SessionCookie string    `json:"session_cookie,omitempty"`
	OpenAIAPIKey  string    `json:"openai_api_key,omitempty"`
	ClaudeAPIKey  string    `json:"claude_api_key,omitempty"`
	GeminiAPIKey  string    `json:"gemini_api_key,omitempty"`
	HunterAPIKey  string    `json:"hunter_api_key,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// HasLinkedInLogin reports whether a usable login pair is configured
func (c *Credentials) HasLinkedInLogin() bool {
	return c != nil && c.LinkedInEmail != "" && c.LinkedInPassword != ""
}

// APIKeyFor returns the stored key for a provider name ("openai",
// "claude", "gemini", "hunter"), or empty when not configured
func (c *Credentials) APIKeyFor(provider string) string {
	if c == nil {
		return ""
	}
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "claude":
		return c.ClaudeAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "hunter":
		return c.HunterAPIKey
	}
	return ""
}

// Masked returns a copy safe to return from the API: every secret that is
// set is replaced with MaskedSecret, empty fields stay empty so clients
// can tell what is configured.
func (c *Credentials) Masked() Credentials {
	masked := *c
	if masked.LinkedInPassword != "" {
		masked.LinkedInPassword = MaskedSecret
	}
	if masked.SessionCookie != "" {
		masked.SessionCookie = MaskedSecret
	}
	if masked.OpenAIAPIKey != "" {
		masked.OpenAIAPIKey = MaskedSecret
	}
	if masked.ClaudeAPIKey != "" {
		masked.ClaudeAPIKey = MaskedSecret
	}
	if masked.GeminiAPIKey != "" {
		masked.GeminiAPIKey = MaskedSecret
	}
	if masked.HunterAPIKey != "" {
		masked.HunterAPIKey = MaskedSecret
	}
	return masked
}

// MergeFrom copies non-empty and non-masked incoming fields onto c.
// Clients round-trip the masked GET response when editing, so a masked
// value means "leave the stored secret alone".
func (c *Credentials) MergeFrom(in *Credentials) {
	if in.LinkedInEmail != "" {
		c.LinkedInEmail = in.LinkedInEmail
	}
	if in.LinkedInPassword != "" && in.LinkedInPassword != MaskedSecret {
		c.LinkedInPassword = in.LinkedInPassword
	}
	if in.SessionCookie != "" && in.SessionCookie != MaskedSecret {
		c.SessionCookie = in.SessionCookie
	}
	if in.OpenAIAPIKey != "" && in.OpenAIAPIKey != MaskedSecret {
		c.OpenAIAPIKey = in.OpenAIAPIKey
	}
	if in.ClaudeAPIKey != "" && in.ClaudeAPIKey != MaskedSecret {
		c.ClaudeAPIKey = in.ClaudeAPIKey
	}
	if in.GeminiAPIKey != "" && in.GeminiAPIKey != MaskedSecret {
		c.GeminiAPIKey = in.GeminiAPIKey
	}
	if in.HunterAPIKey != "" && in.HunterAPIKey != MaskedSecret {
		c.HunterAPIKey = in.HunterAPIKey
	}
}
