// Package openrouter provides a client for the OpenRouter chat-completion API.
package openrouter

import "company_research/internal/shared/retry"

// Config holds configuration for the OpenRouter client.
type Config struct {
	APIKey  string       // Bearer token
	BaseURL string       // e.g. "https://openrouter.ai/api/v1"
	SiteURL string       // Sent as HTTP-Referer
	AppName string       // Sent as X-Title
	Retry   retry.Policy // Applied to every completion call
}
