package usecase

import "company_research/internal/feature/research/domain/entity"

// DefaultSections は企業プロフィールを構成する固定セクションを順序どおりに返します。
// 呼び出しごとに新しいスライスを返すため、呼び出し元が変更しても共有されません。
func DefaultSections() []entity.ResearchSection {
	return []entity.ResearchSection{
		{Name: "founded_year", Queries: []string{
			"When was {company} founded?",
		}},
		{Name: "managing_director", Queries: []string{
			"Who is the current CEO of {company}?",
		}},
		{Name: "introduction", Queries: []string{
			"What is {company}'s main business?",
			"What are {company}'s key achievements?",
			"What is {company}'s market position?",
		}},
		{Name: "company_overview", Queries: []string{
			"What is {company}'s history?",
			"How has {company} evolved?",
			"What are {company}'s major milestones?",
		}},
		{Name: "business_segments", Queries: []string{
			"What are {company}'s business divisions?",
			"What products does {company} offer?",
			"What services does {company} provide?",
		}},
		{Name: "leadership", Queries: []string{
			"Who leads {company}?",
			"Who are {company}'s board members?",
			"Who are {company}'s executives?",
		}},
		{Name: "financial_performance", Queries: []string{
			"What is {company}'s recent revenue?",
			"What is {company}'s profit growth?",
			"What are {company}'s financial metrics?",
		}},
		{Name: "business_segment_deep_dive", Queries: []string{
			"How do {company}'s divisions perform?",
			"What are {company}'s segment revenues?",
			"How profitable are {company}'s segments?",
		}},
		{Name: "recent_developments", Queries: []string{
			"What are {company}'s latest announcements?",
			"What are {company}'s recent acquisitions?",
			"What are {company}'s new projects?",
		}},
		{Name: "industry_outlook", Queries: []string{
			"How competitive is {company}?",
			"What is {company}'s market share?",
			"What are {company}'s growth prospects?",
		}},
	}
}

// SectionNames はセクション名を順序どおりに返します。
func SectionNames(sections []entity.ResearchSection) []string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
	}
	return names
}
