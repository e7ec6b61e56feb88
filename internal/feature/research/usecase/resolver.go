package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"company_research/internal/feature/research/domain/entity"
)

// Resolver は入力された企業名またはティッカーを正規の名称/コードに解決します。
type Resolver struct {
	completer Completer
	model     string
}

// NewResolver はResolverを生成します。
func NewResolver(c Completer, model string) *Resolver {
	return &Resolver{completer: c, model: model}
}

// Resolve は補完APIを1回呼び出し、応答をそのまま返します。形式の検証はしません。
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	slog.InfoContext(ctx, "resolving company info", "input", input)

	msgs := []entity.ChatMessage{entity.UserMessage(BuildResolvePrompt(input))}
	out, err := r.completer.Complete(ctx, r.model, msgs)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", input, err)
	}

	slog.InfoContext(ctx, "resolved company info", "input", input, "resolved", out)
	return out, nil
}
