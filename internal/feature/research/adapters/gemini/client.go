// Package gemini はGoogle Gemini APIを使用したCompleter実装を提供します。
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/shared/retry"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey  string
	BaseURL string // 空ならSDKのデフォルト
	Retry   retry.Policy
}

// GeminiCompleter はGoogle Gemini APIでチャット補完を行います。
type GeminiCompleter struct {
	client *genai.Client
	retry  retry.Policy
}

// GeminiCompleterがCompleterを実装していることをコンパイル時に検証します。
var _ usecase.Completer = (*GeminiCompleter)(nil)

// NewGeminiCompleter はAPIキーで認証するGeminiCompleterを生成します。
func NewGeminiCompleter(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiCompleter, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiCompleter{client: client, retry: cfg.Retry}, nil
}

// Complete はメッセージをGeminiの会話形式に変換して生成します。
// systemメッセージはSystemInstructionとして渡します。
func (g *GeminiCompleter) Complete(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
	slog.InfoContext(ctx, "generating completion", "provider", "gemini", "model", model)

	contents, gcfg := toContents(messages)
	out, err := retry.Do(ctx, g.retry, "gemini.complete", func(ctx context.Context) (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, model, contents, gcfg)
		if err != nil {
			return "", fmt.Errorf("gemini API request failed: %w", err)
		}
		// 空の応答もそのまま返す
		return resp.Text(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrCompletionFailed, err)
	}
	return out, nil
}

func toContents(messages []entity.ChatMessage) ([]*genai.Content, *genai.GenerateContentConfig) {
	var (
		contents []*genai.Content
		system   []string
	)
	for _, m := range messages {
		switch m.Role {
		case entity.RoleSystem:
			system = append(system, m.Content)
		case entity.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) == 0 {
		return contents, nil
	}
	return contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser),
	}
}
