package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// InvalidDateError means a stored transaction has a date that is not
// YYYY-MM-DD.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("time data %q does not match format YYYY-MM-DD", e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// MonthlyAggregate holds the spending of one calendar month.
type MonthlyAggregate struct {
	Month       string             `json:"month" doc:"Month key, YYYY-MM"`
	Total       float64            `json:"total" doc:"Sum of amounts in the month"`
	Count       int                `json:"count" doc:"Number of transactions in the month"`
	Average     float64            `json:"average" doc:"Mean amount in the month"`
	TopCategory string             `json:"top_category" doc:"Category with the highest total in the month"`
	Categories  map[string]float64 `json:"categories" doc:"Total per category within the month"`
}

// TrendResult lists monthly aggregates in ascending month order.
type TrendResult struct {
	MonthlyTrends []MonthlyAggregate `json:"monthly_trends" doc:"One entry per month, oldest first"`
	MonthsCount   int                `json:"months_count" doc:"Number of months"`
}

type monthBucket struct {
	month  string
	total  decimal.Decimal
	count  int
	groups []*categoryGroup
	index  map[string]*categoryGroup
}

func (b *monthBucket) add(txn transaction.Transaction) {
	g, ok := b.index[txn.Category()]
	if !ok {
		g = &categoryGroup{category: txn.Category()}
		b.index[txn.Category()] = g
		b.groups = append(b.groups, g)
	}
	g.add(txn.Amount())
	b.total = b.total.Add(txn.Amount())
	b.count++
}

// topCategory returns the category with the largest total; the first
// encountered wins a tie.
func (b *monthBucket) topCategory() string {
	var top *categoryGroup
	for _, g := range b.groups {
		if top == nil || g.total.GreaterThan(top.total) {
			top = g
		}
	}
	return top.category
}

// MonthlyTrends buckets transactions by calendar month. A date that does not
// parse as YYYY-MM-DD fails the whole computation with *InvalidDateError.
func MonthlyTrends(txs []transaction.Transaction) (*TrendResult, error) {
	buckets := make(map[string]*monthBucket)

	for _, txn := range txs {
		date, err := time.Parse(dateLayout, txn.Date())
		if err != nil {
			return nil, &InvalidDateError{Value: txn.Date(), Err: err}
		}

		month := date.Format(monthLayout)
		b, ok := buckets[month]
		if !ok {
			b = &monthBucket{month: month, index: make(map[string]*categoryGroup)}
			buckets[month] = b
		}
		b.add(txn)
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	slices.SortFunc(months, strings.Compare)

	trends := make([]MonthlyAggregate, len(months))
	for i, month := range months {
		b := buckets[month]
		categories := make(map[string]float64, len(b.groups))
		for _, g := range b.groups {
			categories[g.category] = round2(g.total)
		}
		trends[i] = MonthlyAggregate{
			Month:       month,
			Total:       round2(b.total),
			Count:       b.count,
			Average:     round2(mean(b.total, b.count)),
			TopCategory: b.topCategory(),
			Categories:  categories,
		}
	}

	return &TrendResult{MonthlyTrends: trends, MonthsCount: len(trends)}, nil
}
