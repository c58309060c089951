// Package analytics derives summary, trend, detail and insight views from a
// list of validated transactions. Every function is pure: it reads its input
// and never modifies it.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

var hundred = decimal.NewFromInt(100)

// categoryGroup accumulates the transactions of one category.
type categoryGroup struct {
	category string
	total    decimal.Decimal
	count    int
	highest  decimal.Decimal
	lowest   decimal.Decimal
}

func (g *categoryGroup) add(amount decimal.Decimal) {
	if g.count == 0 || amount.GreaterThan(g.highest) {
		g.highest = amount
	}
	if g.count == 0 || amount.LessThan(g.lowest) {
		g.lowest = amount
	}
	g.total = g.total.Add(amount)
	g.count++
}

// groupByCategory groups transactions by category. Groups are returned in the
// order their category was first encountered.
func groupByCategory(txs []transaction.Transaction) []*categoryGroup {
	index := make(map[string]*categoryGroup)
	var groups []*categoryGroup

	for _, txn := range txs {
		g, ok := index[txn.Category()]
		if !ok {
			g = &categoryGroup{category: txn.Category()}
			index[txn.Category()] = g
			groups = append(groups, g)
		}
		g.add(txn.Amount())
	}

	return groups
}

func sumAmounts(txs []transaction.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txs {
		total = total.Add(txn.Amount())
	}
	return total
}

// mean returns total/count, or zero when count is zero.
func mean(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// round2 rounds a monetary value to two decimals for output.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
