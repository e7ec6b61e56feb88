// Package googlesearch はGoogle Custom Search APIを使用したSearcher実装を提供します。
package googlesearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/shared/retry"
)

// maxNum はCustom Search APIが1回で返せる結果数の上限です。
const maxNum = 10

// Config holds configuration for the Custom Search client.
type Config struct {
	APIKey     string
	CX         string // Programmable Search Engine ID
	MaxResults int
	Retry      retry.Policy
}

// Client はCustom Search APIで検索するSearcher実装です。
type Client struct {
	svc *customsearch.Service
	cfg Config
}

// ClientがSearcherを実装していることをコンパイル時に検証します。
var _ usecase.Searcher = (*Client)(nil)

// NewClient はAPIキーで認証するClientを生成します。
// opts はテストでエンドポイントやHTTPクライアントを差し替えるために使います。
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if cfg.MaxResults <= 0 || cfg.MaxResults > maxNum {
		cfg.MaxResults = maxNum
	}
	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Client{svc: svc, cfg: cfg}, nil
}

// Search はクエリを検索し、結果を提供元の順序のまま返します。
func (c *Client) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	slog.InfoContext(ctx, "performing search", "provider", "google", "query", query)

	results, err := retry.Do(ctx, c.cfg.Retry, "googlesearch.search", func(ctx context.Context) ([]entity.SearchResult, error) {
		resp, err := c.svc.Cse.List().Cx(c.cfg.CX).Q(query).Num(int64(c.cfg.MaxResults)).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		out := make([]entity.SearchResult, 0, len(resp.Items))
		for _, item := range resp.Items {
			out = append(out, entity.SearchResult{
				Title:   item.Title,
				URL:     item.Link,
				Content: snippetText(item.HtmlSnippet, item.Snippet),
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrSearchFailed, err)
	}

	slog.InfoContext(ctx, "search successful", "provider", "google", "query", query, "results", len(results))
	return results, nil
}

// snippetText はHTMLスニペットをプレーンテキストに変換します。
// HTMLがない、または解析できない場合はプレーンなスニペットを返します。
func snippetText(html, plain string) string {
	if strings.TrimSpace(html) == "" {
		return plain
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return plain
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return plain
	}
	return text
}
