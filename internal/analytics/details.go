package analytics

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// ErrNoTransactions is returned when a query needs data but none was uploaded.
var ErrNoTransactions = errors.New("no transactions found")

// CategoryNotFoundError is returned when no transaction matches a category.
type CategoryNotFoundError struct {
	Category string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("no transactions found for category: %s", e.Category)
}

// DetailResult is the drill-down view of a single category.
type DetailResult struct {
	Category string
	Total    float64
	Count    int
	Average  float64
	// Highest and Lowest are the raw amounts, not rounded.
	Highest      float64
	Lowest       float64
	Transactions []transaction.Transaction
}

// CategoryDetails returns the transactions of one category sorted by date.
// The category must match exactly, including case.
func CategoryDetails(txs []transaction.Transaction, category string) (*DetailResult, error) {
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	var matched []transaction.Transaction
	group := &categoryGroup{category: category}
	for _, txn := range txs {
		if txn.Category() != category {
			continue
		}
		matched = append(matched, txn)
		group.add(txn.Amount())
	}
	if len(matched) == 0 {
		return nil, &CategoryNotFoundError{Category: category}
	}

	slices.SortStableFunc(matched, func(a, b transaction.Transaction) int {
		return strings.Compare(a.Date(), b.Date())
	})

	return &DetailResult{
		Category:     category,
		Total:        round2(group.total),
		Count:        group.count,
		Average:      round2(mean(group.total, group.count)),
		Highest:      group.highest.InexactFloat64(),
		Lowest:       group.lowest.InexactFloat64(),
		Transactions: matched,
	}, nil
}
