package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// DefaultCurrencySymbol is prefixed to monetary values in insights.
const DefaultCurrencySymbol = "₹"

// NoInsightsMessage is the only insight produced for an empty batch.
const NoInsightsMessage = "No transactions available. Upload data to see insights."

// GenerateInsights describes the batch in a few sentences. The order is
// fixed: highest spend, average, most frequent, lowest spend (only with more
// than one category) and high-value count (only when there is one).
func GenerateInsights(txs []transaction.Transaction, currency string) []string {
	if len(txs) == 0 {
		return []string{NoInsightsMessage}
	}

	groups := groupByCategory(txs)
	grandTotal := sumAmounts(txs)
	average := mean(grandTotal, len(txs))

	var insights []string

	highest := extremeGroup(groups, func(candidate, best *categoryGroup) bool {
		return candidate.total.GreaterThan(best.total)
	})
	insights = append(insights, fmt.Sprintf(
		"Your highest spend is on %s (%s%s), which is %s%% of your total spending",
		highest.category, currency, highest.total.StringFixed(2), percentOf(highest.total, grandTotal).StringFixed(1),
	))

	insights = append(insights, fmt.Sprintf(
		"Your average transaction value is %s%s across %d transactions",
		currency, average.StringFixed(2), len(txs),
	))

	frequent := extremeGroup(groups, func(candidate, best *categoryGroup) bool {
		return candidate.count > best.count
	})
	insights = append(insights, fmt.Sprintf(
		"You make the most transactions in %s (%d transactions)",
		frequent.category, frequent.count,
	))

	if len(groups) > 1 {
		lowest := extremeGroup(groups, func(candidate, best *categoryGroup) bool {
			return candidate.total.LessThan(best.total)
		})
		insights = append(insights, fmt.Sprintf(
			"You spend the least on %s with only %s%s",
			lowest.category, currency, lowest.total.StringFixed(2),
		))
	}

	threshold := average.Mul(decimal.NewFromInt(2))
	highValue := 0
	for _, txn := range txs {
		if txn.Amount().GreaterThan(threshold) {
			highValue++
		}
	}
	if highValue > 0 {
		insights = append(insights, fmt.Sprintf(
			"You have %d high-value transactions (over %s%s)",
			highValue, currency, threshold.StringFixed(2),
		))
	}

	return insights
}

// extremeGroup returns the first group for which no later group is better.
func extremeGroup(groups []*categoryGroup, better func(candidate, best *categoryGroup) bool) *categoryGroup {
	best := groups[0]
	for _, g := range groups[1:] {
		if better(g, best) {
			best = g
		}
	}
	return best
}
