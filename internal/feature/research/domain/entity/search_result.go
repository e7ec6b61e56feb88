package entity

// SearchResult は1件の検索結果スニペットを表します。連結後は破棄されます。
type SearchResult struct {
	Title   string // ページタイトル
	URL     string // ページURL（ログ用）
	Content string // 本文スニペット
}
