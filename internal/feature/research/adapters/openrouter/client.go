package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"company_research/internal/feature/research/adapters/openrouter/dto"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/shared/retry"
)

// maxErrorBody は エラーメッセージに含めるレスポンスボディの上限です。
const maxErrorBody = 512

// Client はOpenRouterのチャット補完APIを呼び出すCompleter実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCompleterを実装していることをコンパイル時に検証します。
var _ usecase.Completer = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// Complete はメッセージを送信し、最初の選択肢の本文を返します。
// 失敗時は設定された回数まで再試行し、最後のエラーを ErrCompletionFailed でラップします。
func (c *Client) Complete(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
	slog.InfoContext(ctx, "generating completion", "provider", "openrouter", "model", model)

	out, err := retry.Do(ctx, c.cfg.Retry, "openrouter.complete", func(ctx context.Context) (string, error) {
		return c.complete(ctx, model, messages)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrCompletionFailed, err)
	}

	slog.InfoContext(ctx, "completion request successful", "provider", "openrouter", "model", model)
	return out, nil
}

func (c *Client) complete(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
	body := dto.ChatCompletionRequest{Model: model, Messages: make([]dto.ChatMessage, 0, len(messages))}
	for _, m := range messages {
		body.Messages = append(body.Messages, dto.ChatMessage{Role: m.Role, Content: m.Content})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("HTTP-Referer", c.cfg.SiteURL)
	req.Header.Set("X-Title", c.cfg.AppName)
	req.Header.Set("Content-Type", "application/json")

	// リクエストを実行
	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return "", fmt.Errorf("openrouter http %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	// JSONレスポンスをDTOにデコード
	var out dto.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("openrouter: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openrouter: response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}
