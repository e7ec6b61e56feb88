// Package usecase はresearchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/shared/ratelimiter"
)

const (
	// DefaultMinQueryLength より短いクエリは検索しません。
	DefaultMinQueryLength = 5
	// DefaultSectionPause は各セクション後の待機時間です。
	DefaultSectionPause = time.Second

	resultSeparator = "\n\n"
	tracerName      = "company_research/research"
)

// Settings はオーケストレーションの調整値です。
type Settings struct {
	Model          string // 補完APIに渡すモデルID
	MinQueryLength int    // これ未満（rune数）のクエリはスキップ
}

// researchUsecase は企業調査のオーケストレーションを提供します。
// 解決 → セクションごとに検索 → 連結 → 要約 → 格納 を逐次実行します。
type researchUsecase struct {
	resolver       *Resolver
	summarizer     *Summarizer
	searcher       Searcher
	pacer          ratelimiter.Pacer
	sections       []entity.ResearchSection
	minQueryLength int
	now            func() time.Time
	tracer         trace.Tracer
}

// NewResearchUsecase はresearchUsecaseの新しいインスタンスを生成します。
// 同じCompleterをResolverとSummarizerで共有します。
func NewResearchUsecase(c Completer, s Searcher, p ratelimiter.Pacer, st Settings) *researchUsecase {
	minLen := st.MinQueryLength
	if minLen < 0 {
		minLen = DefaultMinQueryLength
	}
	return &researchUsecase{
		resolver:       NewResolver(c, st.Model),
		summarizer:     NewSummarizer(c, st.Model),
		searcher:       s,
		pacer:          p,
		sections:       DefaultSections(),
		minQueryLength: minLen,
		now:            time.Now,
		tracer:         otel.Tracer(tracerName),
	}
}

// Sections は調査対象のセクションを返します。
func (u *researchUsecase) Sections() []entity.ResearchSection {
	return u.sections
}

// Research は企業入力から完全なプロフィールを生成します。
// いずれかの検索・要約が最終的に失敗した場合はプロフィールを返さずエラーにします。
func (u *researchUsecase) Research(ctx context.Context, input string) (*entity.CompanyProfile, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	ctx, span := u.tracer.Start(ctx, "research.company", trace.WithAttributes(attribute.String("company.input", input)))
	defer span.End()

	slog.InfoContext(ctx, "starting research", "company", input)
	start := time.Now()

	resolved, err := u.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, fail(span, err)
	}

	sections := make(map[string]string, len(u.sections))
	stamp := u.now()

	for _, s := range u.sections {
		slog.InfoContext(ctx, "researching section", "company", input, "section", s.Name)

		summary, err := u.researchSection(ctx, s, input)
		if err != nil {
			return nil, fail(span, fmt.Errorf("section %q: %w", s.Name, err))
		}
		sections[s.Name] = summary

		// 上流のレート制限を避けるための待機
		if err := u.pacer.Wait(ctx); err != nil {
			return nil, fail(span, fmt.Errorf("pause after section %q: %w", s.Name, err))
		}
	}

	slog.InfoContext(ctx, "research completed", "company", input, "sections", len(sections), "elapsed", time.Since(start))
	return &entity.CompanyProfile{
		Input:        input,
		ResolvedInfo: resolved,
		Timestamp:    stamp,
		Sections:     sections,
	}, nil
}

// researchSection はセクションの全クエリを検索して連結し、要約を返します。
func (u *researchUsecase) researchSection(ctx context.Context, s entity.ResearchSection, company string) (string, error) {
	ctx, span := u.tracer.Start(ctx, "research.section", trace.WithAttributes(attribute.String("section.name", s.Name)))
	defer span.End()

	var combined strings.Builder
	for i := range s.Queries {
		q := s.FormatQuery(i, company)
		if utf8.RuneCountInString(q) < u.minQueryLength {
			slog.WarnContext(ctx, "query too short, skipping", "section", s.Name, "query", q)
			continue
		}

		results, err := u.search(ctx, q)
		if err != nil {
			return "", fail(span, err)
		}

		if combined.Len() > 0 {
			combined.WriteString(resultSeparator)
		}
		combined.WriteString(formatResults(results))
	}

	summary, err := u.summarizer.Summarize(ctx, s.Name, combined.String())
	if err != nil {
		return "", fail(span, err)
	}
	return summary, nil
}

func (u *researchUsecase) search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	ctx, span := u.tracer.Start(ctx, "research.search", trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	slog.InfoContext(ctx, "executing search query", "query", query)
	results, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, fail(span, fmt.Errorf("search %q: %w", query, err))
	}
	span.SetAttributes(attribute.Int("search.results", len(results)))
	return results, nil
}

// formatResults は検索結果を "Title: ..\nContent: .." のブロックにして空行で連結します。
func formatResults(results []entity.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "Title: "+r.Title+"\nContent: "+r.Content)
	}
	return strings.Join(blocks, resultSeparator)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
