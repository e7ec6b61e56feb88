package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"company_research/internal/feature/research/domain/entity"
)

// Summarizer はセクションの検索結果を補完APIで要約します。
type Summarizer struct {
	completer Completer
	model     string
}

// NewSummarizer はSummarizerを生成します。
func NewSummarizer(c Completer, model string) *Summarizer {
	return &Summarizer{completer: c, model: model}
}

// Summarize は要約をそのまま返します。長さや形式は検証せず、文字数だけをログに残します。
func (s *Summarizer) Summarize(ctx context.Context, sectionName, content string) (string, error) {
	slog.InfoContext(ctx, "extracting section info", "section", sectionName, "content_chars", utf8.RuneCountInString(content))

	msgs := []entity.ChatMessage{entity.UserMessage(BuildSummaryPrompt(sectionName, content))}
	out, err := s.completer.Complete(ctx, s.model, msgs)
	if err != nil {
		return "", fmt.Errorf("summarize section %q: %w", sectionName, err)
	}

	slog.InfoContext(ctx, "extracted section info", "section", sectionName, "chars", utf8.RuneCountInString(out))
	return out, nil
}
