// Package config loads the process-wide configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"company_research/internal/shared/retry"
)

// Supported backends.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderTavily     = "tavily"
	ProviderGoogle     = "google"
)

// Config is the explicit configuration object passed to every component.
// Nothing reads the environment after Load returns.
type Config struct {
	Env string `env:"APP_ENV" env-default:"local"`

	LLMProvider    string `env:"LLM_PROVIDER" env-default:"openrouter"`
	SearchProvider string `env:"SEARCH_PROVIDER" env-default:"tavily"`

	OpenRouter   OpenRouter
	Gemini       Gemini
	Tavily       Tavily
	GoogleSearch GoogleSearch
	Research     Research
	Retry        Retry
	HTTPClient   HTTPClient
	Server       Server
	Log          Log
	Redis        Redis
	RateLimit    RateLimit
	Auth         Auth
	Telemetry    Telemetry
}

// OpenRouter holds the chat-completion API settings.
type OpenRouter struct {
	APIKey  string `env:"OPENROUTER_API_KEY" env-required:"true"`
	BaseURL string `env:"OPENROUTER_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	SiteURL string `env:"YOUR_SITE_URL" env-default:"http://localhost"`
	AppName string `env:"YOUR_APP_NAME" env-default:"CompanyResearchAPI"`
	Model   string `env:"LLM_MODEL" env-default:"anthropic/claude-3.5-sonnet"`
}

// Gemini holds the alternative completion backend settings.
type Gemini struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

// Tavily holds the web search API settings.
type Tavily struct {
	APIKey  string `env:"TAVILY_API_KEY" env-required:"true"`
	BaseURL string `env:"TAVILY_BASE_URL" env-default:"https://api.tavily.com"`
}

// GoogleSearch holds the Custom Search settings used when SEARCH_PROVIDER=google.
type GoogleSearch struct {
	APIKey string `env:"GOOGLE_SEARCH_API_KEY"`
	CX     string `env:"GOOGLE_SEARCH_CX"`
}

// Research holds the orchestration knobs.
type Research struct {
	MaxResults     int           `env:"SEARCH_MAX_RESULTS" env-default:"10"`
	SearchDepth    string        `env:"SEARCH_DEPTH" env-default:"basic"`
	SectionPause   time.Duration `env:"RESEARCH_SECTION_PAUSE" env-default:"1s"`
	MinQueryLength int           `env:"RESEARCH_MIN_QUERY_LENGTH" env-default:"5"`
}

// Retry holds the backoff settings of both outbound clients.
type Retry struct {
	SearchAttempts      int           `env:"SEARCH_RETRY_ATTEMPTS" env-default:"3"`
	SearchBaseDelay     time.Duration `env:"SEARCH_RETRY_BASE_DELAY" env-default:"2s"`
	CompletionAttempts  int           `env:"COMPLETION_RETRY_ATTEMPTS" env-default:"3"`
	CompletionBaseDelay time.Duration `env:"COMPLETION_RETRY_BASE_DELAY" env-default:"1s"`
	Multiplier          float64       `env:"RETRY_MULTIPLIER" env-default:"2"`
}

// HTTPClient holds outbound client settings. A zero timeout means no overall timeout.
type HTTPClient struct {
	Timeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" env-default:"0s"`
}

// Server holds inbound HTTP settings.
type Server struct {
	Addr            string        `env:"SERVER_ADDR" env-default:":8000"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Log holds the log sink settings.
type Log struct {
	Dir        string `env:"LOG_DIR" env-default:"logs"`
	File       string `env:"LOG_FILE" env-default:"company_research.log"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"5"`
	Level      string `env:"LOG_LEVEL" env-default:"info"`
}

// Redis holds the optional Redis connection. An empty host disables Redis.
type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// RateLimit holds the inbound limit. Zero requests disables it.
type RateLimit struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"0"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
}

// Auth holds the optional bearer JWT secret. Empty disables auth.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

// Telemetry holds the tracing exporter settings. Empty endpoint keeps a no-op tracer.
type Telemetry struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" env-default:"company-research-api"`
}

// Load reads the given .env files (".env" when none is given) and then the environment.
// Missing .env files are ignored. Values from .env override the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Overload(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.OpenRouter.APIKey) == "" {
		errs = append(errs, errors.New("OPENROUTER_API_KEY is required"))
	}
	if strings.TrimSpace(c.Tavily.APIKey) == "" {
		errs = append(errs, errors.New("TAVILY_API_KEY is required"))
	}

	switch c.LLMProvider {
	case ProviderOpenRouter:
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	switch c.SearchProvider {
	case ProviderTavily:
	case ProviderGoogle:
		if c.GoogleSearch.APIKey == "" || c.GoogleSearch.CX == "" {
			errs = append(errs, errors.New("GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_CX are required when SEARCH_PROVIDER=google"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SEARCH_PROVIDER %q", c.SearchProvider))
	}

	if c.Research.MaxResults <= 0 {
		errs = append(errs, errors.New("SEARCH_MAX_RESULTS must be positive"))
	}
	if c.Retry.SearchAttempts <= 0 || c.Retry.CompletionAttempts <= 0 {
		errs = append(errs, errors.New("retry attempts must be positive"))
	}
	return errors.Join(errs...)
}

// CompletionModel returns the model identifier for the selected completion backend.
func (c *Config) CompletionModel() string {
	if c.LLMProvider == ProviderGemini {
		return c.Gemini.Model
	}
	return c.OpenRouter.Model
}

// SearchPolicy returns the retry policy of the search client.
func (r Retry) SearchPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: r.SearchAttempts, BaseDelay: r.SearchBaseDelay, Multiplier: r.Multiplier}
}

// CompletionPolicy returns the retry policy of the completion client.
func (r Retry) CompletionPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: r.CompletionAttempts, BaseDelay: r.CompletionBaseDelay, Multiplier: r.Multiplier}
}

// Enabled reports whether a Redis host is configured.
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Enabled reports whether inbound rate limiting is on.
func (r RateLimit) Enabled() bool {
	return r.Requests > 0 && r.Window > 0
}

// Enabled reports whether bearer auth is on.
func (a Auth) Enabled() bool {
	return a.JWTSecret != ""
}
