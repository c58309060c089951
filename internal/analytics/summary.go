package analytics

import (
	"slices"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// CategoryAggregate holds the spending statistics of one category.
type CategoryAggregate struct {
	Category   string  `json:"category" doc:"Category label"`
	Total      float64 `json:"total" doc:"Sum of amounts"`
	Count      int     `json:"count" doc:"Number of transactions"`
	Average    float64 `json:"average" doc:"Mean amount"`
	Percentage float64 `json:"percentage" doc:"Share of the grand total, 0-100"`
	Highest    float64 `json:"highest" doc:"Largest amount"`
	Lowest     float64 `json:"lowest" doc:"Smallest amount"`
}

// SummaryResult is the per-category breakdown of the whole batch.
type SummaryResult struct {
	Summary           []CategoryAggregate `json:"summary" doc:"Categories sorted by total, highest first"`
	GrandTotal        float64             `json:"grand_total" doc:"Sum of all amounts"`
	CategoriesCount   int                 `json:"categories_count" doc:"Number of distinct categories"`
	TotalTransactions int                 `json:"total_transactions" doc:"Number of transactions"`
	OverallAverage    float64             `json:"overall_average" doc:"Mean amount over all transactions"`
}

// Summarize groups the transactions by category. Categories are sorted by
// total descending; equal totals keep first-encountered order. Monetary
// values are rounded to two decimals only in the result.
func Summarize(txs []transaction.Transaction) SummaryResult {
	if len(txs) == 0 {
		return SummaryResult{Summary: []CategoryAggregate{}}
	}

	groups := groupByCategory(txs)
	slices.SortStableFunc(groups, func(a, b *categoryGroup) int {
		return b.total.Cmp(a.total)
	})

	grandTotal := sumAmounts(txs)

	summary := make([]CategoryAggregate, len(groups))
	for i, g := range groups {
		summary[i] = CategoryAggregate{
			Category:   g.category,
			Total:      round2(g.total),
			Count:      g.count,
			Average:    round2(mean(g.total, g.count)),
			Percentage: round2(percentOf(g.total, grandTotal)),
			Highest:    round2(g.highest),
			Lowest:     round2(g.lowest),
		}
	}

	return SummaryResult{
		Summary:           summary,
		GrandTotal:        round2(grandTotal),
		CategoriesCount:   len(summary),
		TotalTransactions: len(txs),
		OverallAverage:    round2(mean(grandTotal, len(txs))),
	}
}
