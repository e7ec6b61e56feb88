package entity

import "strings"

// CompanyPlaceholder はクエリテンプレート内で企業入力に置換される文字列です。
const CompanyPlaceholder = "{company}"

// ResearchSection はプロフィールの1トピックと、その検索クエリテンプレートを表します。
type ResearchSection struct {
	Name    string   // セクション名（例: "leadership"）
	Queries []string // {company} を含むクエリテンプレート（順序付き）
}

// FormatQuery は i 番目のテンプレートに企業入力を埋め込んだクエリを返します。
func (s ResearchSection) FormatQuery(i int, company string) string {
	return strings.ReplaceAll(s.Queries[i], CompanyPlaceholder, company)
}
