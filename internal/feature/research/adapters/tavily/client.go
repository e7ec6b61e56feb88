// Package tavily provides a client for the Tavily web search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"company_research/internal/feature/research/adapters/tavily/dto"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/shared/retry"
)

const (
	// DefaultMaxResults は1クエリあたりの結果数の上限です。
	DefaultMaxResults = 10
	// DefaultSearchDepth はTavilyの検索深度です。
	DefaultSearchDepth = "basic"

	maxErrorBody = 512
)

// Config holds configuration for the Tavily client.
type Config struct {
	APIKey      string
	BaseURL     string // e.g. "https://api.tavily.com"
	MaxResults  int
	SearchDepth string
	Retry       retry.Policy
}

// Client はTavily検索APIを呼び出すSearcher実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがSearcherを実装していることをコンパイル時に検証します。
var _ usecase.Searcher = (*Client)(nil)

// NewClient はClientを生成します。未設定の結果数と深度にはデフォルト値を使います。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.SearchDepth == "" {
		cfg.SearchDepth = DefaultSearchDepth
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// Search はクエリを検索し、結果を提供元の順序のまま返します。
// 失敗時は設定された回数まで再試行し、最後のエラーを ErrSearchFailed でラップします。
func (c *Client) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	slog.InfoContext(ctx, "performing search", "provider", "tavily", "query", query)

	results, err := retry.Do(ctx, c.cfg.Retry, "tavily.search", func(ctx context.Context) ([]entity.SearchResult, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrSearchFailed, err)
	}

	slog.InfoContext(ctx, "search successful", "provider", "tavily", "query", query, "results", len(results))
	return results, nil
}

func (c *Client) search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	payload, err := json.Marshal(dto.SearchRequest{
		Query:       query,
		APIKey:      c.cfg.APIKey,
		SearchDepth: c.cfg.SearchDepth,
		MaxResults:  c.cfg.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, fmt.Errorf("tavily http %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]entity.SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, entity.SearchResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return results, nil
}
