package usecase

import "fmt"

// ReferenceTemplate は要約の文体と粒度を揃えるためのスタイル見本です。
const ReferenceTemplate = `
Here's an example of how the response should be structured and detailed, following the style of Reliance Industries Ltd analysis:

The response should include detailed sections like:
1. A comprehensive introduction covering the company's position in its industry and key statistics
2. Business segments with detailed explanations of each division's operations and performance
3. Recent financial metrics with specific numbers and growth percentages
4. Leadership structure with key executive names and roles
5. Recent developments and future outlook

For example, the introduction should be as detailed as:
"[Company] is [country]'s [position] in [industry] and a [type] company led by [leader]. It has evolved from [historical context] to [current status] with interests spanning [list of sectors]."

Each business segment should have detailed metrics like:
"[Segment name] reported revenue of [amount] for [period], a growth of [percentage] over [comparison period]. The segment operates [number] of [facilities/stores/units] across [locations]."

Follow this level of detail and structure in your analysis.`

const (
	// ResolvePromptTemplate は企業名とティッカーを相互に解決するプロンプトです。
	ResolvePromptTemplate = "Given the input '%s', if this is a stock code, provide the full company name. " +
		"If it's a company name, provide the stock code. Respond with only the requested information, no additional text."

	// SummaryPromptTemplate はセクション名、スタイル見本、検索結果の順に埋め込みます。
	SummaryPromptTemplate = "From the following content, extract and summarize information relevant to %s. " +
		"Follow the style and level of detail shown in this reference example:\n%s\n\nContent to analyze:\n%s"
)

// BuildResolvePrompt は解決用プロンプトを生成します。
func BuildResolvePrompt(input string) string {
	return fmt.Sprintf(ResolvePromptTemplate, input)
}

// BuildSummaryPrompt は要約用プロンプトを生成します。
func BuildSummaryPrompt(sectionName, content string) string {
	return fmt.Sprintf(SummaryPromptTemplate, sectionName, ReferenceTemplate, content)
}
