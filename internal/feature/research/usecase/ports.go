package usecase

import (
	"context"

	"company_research/internal/feature/research/domain/entity"
)

// Completer はチャット補完APIのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 実装は再試行を内包し、最終試行の失敗時に ErrCompletionFailed をラップして返します。
type Completer interface {
	Complete(ctx context.Context, model string, messages []entity.ChatMessage) (string, error)
}

// Searcher はWeb検索APIのインターフェースです。
// 実装は再試行を内包し、最終試行の失敗時に ErrSearchFailed をラップして返します。
type Searcher interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}
