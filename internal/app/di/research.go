// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"net/http"

	"company_research/internal/feature/research/adapters/gemini"
	"company_research/internal/feature/research/adapters/googlesearch"
	"company_research/internal/feature/research/adapters/openrouter"
	"company_research/internal/feature/research/adapters/tavily"
	"company_research/internal/feature/research/transport/handler"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/platform/config"
	infrahttp "company_research/internal/platform/http"
	"company_research/internal/shared/ratelimiter"
)

// NewOutboundHTTPClient creates the HTTP client shared by the completion and search adapters.
func NewOutboundHTTPClient(cfg *config.Config) *http.Client {
	return infrahttp.NewHTTPClient(infrahttp.ClientOptions{
		Timeout:   cfg.HTTPClient.Timeout,
		UserAgent: cfg.OpenRouter.AppName,
	})
}

// NewCompleter creates the completion backend selected by LLM_PROVIDER.
func NewCompleter(ctx context.Context, cfg *config.Config, hc *http.Client) (usecase.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := gemini.NewGeminiCompleter(ctx, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Retry:  cfg.Retry.CompletionPolicy(),
		}, hc)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenRouter:
		return openrouter.NewClient(openrouter.Config{
			APIKey:  cfg.OpenRouter.APIKey,
			BaseURL: cfg.OpenRouter.BaseURL,
			SiteURL: cfg.OpenRouter.SiteURL,
			AppName: cfg.OpenRouter.AppName,
			Retry:   cfg.Retry.CompletionPolicy(),
		}, hc), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// NewSearcher creates the search backend selected by SEARCH_PROVIDER.
func NewSearcher(ctx context.Context, cfg *config.Config, hc *http.Client) (usecase.Searcher, error) {
	switch cfg.SearchProvider {
	case config.ProviderGoogle:
		s, err := googlesearch.NewClient(ctx, googlesearch.Config{
			APIKey:     cfg.GoogleSearch.APIKey,
			CX:         cfg.GoogleSearch.CX,
			MaxResults: cfg.Research.MaxResults,
			Retry:      cfg.Retry.SearchPolicy(),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ProviderTavily:
		return tavily.NewClient(tavily.Config{
			APIKey:      cfg.Tavily.APIKey,
			BaseURL:     cfg.Tavily.BaseURL,
			MaxResults:  cfg.Research.MaxResults,
			SearchDepth: cfg.Research.SearchDepth,
			Retry:       cfg.Retry.SearchPolicy(),
		}, hc), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}
}

// NewResearchUsecase wires the completion and search backends into the orchestrator.
func NewResearchUsecase(ctx context.Context, cfg *config.Config) (handler.ResearchUsecase, error) {
	hc := NewOutboundHTTPClient(cfg)

	completer, err := NewCompleter(ctx, cfg, hc)
	if err != nil {
		return nil, err
	}
	searcher, err := NewSearcher(ctx, cfg, hc)
	if err != nil {
		return nil, err
	}

	return usecase.NewResearchUsecase(completer, searcher,
		ratelimiter.NewFixedPause(cfg.Research.SectionPause),
		usecase.Settings{
			Model:          cfg.CompletionModel(),
			MinQueryLength: cfg.Research.MinQueryLength,
		}), nil
}
