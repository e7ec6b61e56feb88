package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
)

// mockCompleter はCompleterインターフェースのモック実装です。
type mockCompleter struct {
	mu            sync.Mutex
	CompleteFunc  func(ctx context.Context, model string, messages []entity.ChatMessage) (string, error)
	CompleteCalls int
	Prompts       []string
	Models        []string
}

func (m *mockCompleter) Complete(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.Models = append(m.Models, model)
	for _, msg := range messages {
		m.Prompts = append(m.Prompts, msg.Content)
	}
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, model, messages)
	}
	return "", errors.New("CompleteFunc is not implemented")
}

// mockSearcher はSearcherインターフェースのモック実装です。
type mockSearcher struct {
	SearchFunc  func(ctx context.Context, query string) ([]entity.SearchResult, error)
	SearchCalls int
	Queries     []string
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	m.SearchCalls++
	m.Queries = append(m.Queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, errors.New("SearchFunc is not implemented")
}

// mockPacer はPacerインターフェースのモック実装です。
type mockPacer struct {
	WaitFunc  func(ctx context.Context) error
	WaitCalls int
}

func (m *mockPacer) Wait(ctx context.Context) error {
	m.WaitCalls++
	if m.WaitFunc != nil {
		return m.WaitFunc(ctx)
	}
	return nil
}

const testModel = "anthropic/claude-3.5-sonnet"

// echoCompleter は解決には固定値、要約にはセクション名入りの文字列を返します。
func echoCompleter(resolved string) *mockCompleter {
	return &mockCompleter{
		CompleteFunc: func(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
			p := messages[0].Content
			if strings.HasPrefix(p, "Given the input") {
				return resolved, nil
			}
			return "summary: " + strings.SplitN(strings.TrimPrefix(p, "From the following content, extract and summarize information relevant to "), ".", 2)[0], nil
		},
	}
}

func staticSearcher(results ...entity.SearchResult) *mockSearcher {
	return &mockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]entity.SearchResult, error) {
			return results, nil
		},
	}
}

func newUsecase(c usecase.Completer, s usecase.Searcher, p *mockPacer) interface {
	Research(ctx context.Context, input string) (*entity.CompanyProfile, error)
} {
	return usecase.NewResearchUsecase(c, s, p, usecase.Settings{Model: testModel, MinQueryLength: usecase.DefaultMinQueryLength})
}

func TestResearchUsecase_Research_EndToEnd(t *testing.T) {
	ctx := context.Background()
	completer := echoCompleter("Apple Inc.")
	searcher := staticSearcher(
		entity.SearchResult{Title: "Apple", URL: "https://example.com/a", Content: "Apple makes iPhones."},
	)
	pacer := &mockPacer{}

	uc := newUsecase(completer, searcher, pacer)
	profile, err := uc.Research(ctx, "AAPL")

	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "AAPL", profile.Input)
	assert.Equal(t, "Apple Inc.", profile.ResolvedInfo)
	assert.False(t, profile.Timestamp.IsZero())

	names := usecase.SectionNames(usecase.DefaultSections())
	require.Len(t, profile.Sections, len(names))
	for _, name := range names {
		assert.Equal(t, "summary: "+name, profile.Sections[name], "section %s", name)
	}

	// 1 + 1 + 8セクション×3クエリ
	assert.Equal(t, 26, searcher.SearchCalls)
	// 解決1回 + 要約10回
	assert.Equal(t, 11, completer.CompleteCalls)
	assert.Equal(t, 10, pacer.WaitCalls)
	for _, m := range completer.Models {
		assert.Equal(t, testModel, m)
	}

	assert.Equal(t, "When was AAPL founded?", searcher.Queries[0])
	assert.Equal(t, "Who is the current CEO of AAPL?", searcher.Queries[1])
	assert.Equal(t, "What is AAPL's main business?", searcher.Queries[2])
	assert.Equal(t, usecase.BuildResolvePrompt("AAPL"), completer.Prompts[0])
}

func TestResearchUsecase_Research_ConcatenatesResults(t *testing.T) {
	ctx := context.Background()
	completer := echoCompleter("Apple Inc.")
	searcher := staticSearcher(
		entity.SearchResult{Title: "A", Content: "first"},
		entity.SearchResult{Title: "B", Content: "second"},
	)

	uc := newUsecase(completer, searcher, &mockPacer{})
	_, err := uc.Research(ctx, "Apple")
	require.NoError(t, err)

	oneQuery := "Title: A\nContent: first\n\nTitle: B\nContent: second"
	threeQueries := strings.Join([]string{oneQuery, oneQuery, oneQuery}, "\n\n")

	// Prompts[0] は解決用、以降はセクション順の要約
	assert.Equal(t, usecase.BuildSummaryPrompt("founded_year", oneQuery), completer.Prompts[1])
	assert.Equal(t, usecase.BuildSummaryPrompt("managing_director", oneQuery), completer.Prompts[2])
	assert.Equal(t, usecase.BuildSummaryPrompt("introduction", threeQueries), completer.Prompts[3])
}

func TestResearchUsecase_Research_SkipsShortQueries(t *testing.T) {
	ctx := context.Background()
	completer := echoCompleter("Apple Inc.")
	searcher := staticSearcher(entity.SearchResult{Title: "A", Content: "a"})

	// すべてのクエリがしきい値未満になる設定
	uc := usecase.NewResearchUsecase(completer, searcher, &mockPacer{}, usecase.Settings{Model: testModel, MinQueryLength: 1000})
	profile, err := uc.Research(ctx, "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 0, searcher.SearchCalls)
	assert.Len(t, profile.Sections, 10)
	// 検索がなくても要約は空の内容で呼ばれる
	assert.Equal(t, usecase.BuildSummaryPrompt("founded_year", ""), completer.Prompts[1])
}

func TestResearchUsecase_Research_Errors(t *testing.T) {
	ctx := context.Background()
	errUpstream := errors.New("tavily http 500")

	testCases := []struct {
		name            string
		input           string
		completer       *mockCompleter
		searcher        *mockSearcher
		pacer           *mockPacer
		expectedErr     error
		expectedSearch  int
		expectedWaits   int
		expectedMessage string
	}{
		{
			name:        "error: empty input",
			input:       "   ",
			completer:   echoCompleter("x"),
			searcher:    staticSearcher(),
			pacer:       &mockPacer{},
			expectedErr: usecase.ErrEmptyInput,
		},
		{
			name:  "error: resolver fails",
			input: "AAPL",
			completer: &mockCompleter{CompleteFunc: func(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
				return "", fmt.Errorf("%w: openrouter http 503", usecase.ErrCompletionFailed)
			}},
			searcher:        staticSearcher(),
			pacer:           &mockPacer{},
			expectedErr:     usecase.ErrCompletionFailed,
			expectedMessage: "completion API error: openrouter http 503",
		},
		{
			name:      "error: search fails after retries",
			input:     "AAPL",
			completer: echoCompleter("Apple Inc."),
			searcher: &mockSearcher{SearchFunc: func(ctx context.Context, query string) ([]entity.SearchResult, error) {
				if strings.Contains(query, "CEO") {
					return nil, fmt.Errorf("%w: %w", usecase.ErrSearchFailed, errUpstream)
				}
				return []entity.SearchResult{{Title: "t", Content: "c"}}, nil
			}},
			pacer:           &mockPacer{},
			expectedErr:     errUpstream,
			expectedSearch:  2,
			expectedWaits:   1,
			expectedMessage: "search API error: tavily http 500",
		},
		{
			name:  "error: summarizer fails",
			input: "AAPL",
			completer: &mockCompleter{CompleteFunc: func(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
				if strings.HasPrefix(messages[0].Content, "Given the input") {
					return "Apple Inc.", nil
				}
				return "", usecase.ErrCompletionFailed
			}},
			searcher:       staticSearcher(entity.SearchResult{Title: "t", Content: "c"}),
			pacer:          &mockPacer{},
			expectedErr:    usecase.ErrCompletionFailed,
			expectedSearch: 1,
		},
		{
			name:      "error: pause canceled",
			input:     "AAPL",
			completer: echoCompleter("Apple Inc."),
			searcher:  staticSearcher(entity.SearchResult{Title: "t", Content: "c"}),
			pacer: &mockPacer{WaitFunc: func(ctx context.Context) error {
				return context.Canceled
			}},
			expectedErr:    context.Canceled,
			expectedSearch: 1,
			expectedWaits:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newUsecase(tc.completer, tc.searcher, tc.pacer)

			profile, err := uc.Research(ctx, tc.input)

			require.Error(t, err)
			assert.Nil(t, profile, "no partial profile must be returned")
			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedMessage != "" {
				assert.Contains(t, err.Error(), tc.expectedMessage)
			}
			assert.Equal(t, tc.expectedSearch, tc.searcher.SearchCalls)
			assert.Equal(t, tc.expectedWaits, tc.pacer.WaitCalls)
		})
	}
}

func TestResearchUsecase_Research_NoMemoization(t *testing.T) {
	ctx := context.Background()
	n := 0
	completer := &mockCompleter{CompleteFunc: func(ctx context.Context, model string, messages []entity.ChatMessage) (string, error) {
		n++
		return fmt.Sprintf("reply %d", n), nil
	}}
	searcher := staticSearcher(entity.SearchResult{Title: "t", Content: "c"})

	uc := newUsecase(completer, searcher, &mockPacer{})

	first, err := uc.Research(ctx, "AAPL")
	require.NoError(t, err)
	second, err := uc.Research(ctx, "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 22, completer.CompleteCalls)
	assert.Equal(t, 52, searcher.SearchCalls)
	assert.NotEqual(t, first.ResolvedInfo, second.ResolvedInfo)
	assert.Len(t, first.Sections, 10)
	assert.Len(t, second.Sections, 10)
}
