package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	result := Summarize(nil)

	assert.NotNil(t, result.Summary)
	assert.Empty(t, result.Summary)
	assert.Equal(t, 0.0, result.GrandTotal)
	assert.Equal(t, 0, result.CategoriesCount)
	assert.Equal(t, 0, result.TotalTransactions)
	assert.Equal(t, 0.0, result.OverallAverage)
}

func TestSummarize_Scenario(t *testing.T) {
	result := Summarize(mustParse(t, scenarioBatch))

	assert.Equal(t, 150.0, result.GrandTotal)
	assert.Equal(t, 2, result.CategoriesCount)
	assert.Equal(t, 2, result.TotalTransactions)
	assert.Equal(t, 75.0, result.OverallAverage)

	require.Len(t, result.Summary, 2)
	food := result.Summary[0]
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, 100.0, food.Total)
	assert.Equal(t, 1, food.Count)
	assert.Equal(t, 66.67, food.Percentage)
	assert.Equal(t, "Travel", result.Summary[1].Category)
	assert.Equal(t, 33.33, result.Summary[1].Percentage)
}

func TestSummarize_GroupStatistics(t *testing.T) {
	result := Summarize(mustParse(t, `[
		{"id": 1, "amount": 10.004, "category": "Food", "date": "2025-01-01"},
		{"id": 2, "amount": 30, "category": "Food", "date": "2025-01-02"},
		{"id": 3, "amount": 20.5, "category": "Food", "date": "2025-01-03"}
	]`))

	require.Len(t, result.Summary, 1)
	food := result.Summary[0]
	assert.Equal(t, 3, food.Count)
	assert.Equal(t, 60.5, food.Total)
	assert.Equal(t, 20.17, food.Average)
	assert.Equal(t, 100.0, food.Percentage)
	assert.Equal(t, 30.0, food.Highest)
	assert.Equal(t, 10.0, food.Lowest, "rounded to two decimals")
}

func TestSummarize_SortedByTotalDescending(t *testing.T) {
	result := Summarize(mustParse(t, `[
		{"id": 1, "amount": 5, "category": "Books", "date": "2025-01-01"},
		{"id": 2, "amount": 40, "category": "Rent", "date": "2025-01-01"},
		{"id": 3, "amount": 20, "category": "Food", "date": "2025-01-01"},
		{"id": 4, "amount": 20, "category": "Fuel", "date": "2025-01-01"}
	]`))

	categories := make([]string, len(result.Summary))
	for i, c := range result.Summary {
		categories[i] = c.Category
	}
	assert.Equal(t, []string{"Rent", "Food", "Fuel", "Books"}, categories, "ties keep first-encountered order")
}

func TestSummarize_TotalsAddUp(t *testing.T) {
	result := Summarize(mustParse(t, `[
		{"id": 1, "amount": 10.11, "category": "A", "date": "2025-01-01"},
		{"id": 2, "amount": 20.22, "category": "B", "date": "2025-01-01"},
		{"id": 3, "amount": 30.33, "category": "C", "date": "2025-01-01"},
		{"id": 4, "amount": 0.01, "category": "A", "date": "2025-01-01"},
		{"id": 5, "amount": 7, "category": "D", "date": "2025-01-01"}
	]`))

	var totals, percentages float64
	for _, c := range result.Summary {
		totals += c.Total
		percentages += c.Percentage
	}
	assert.InDelta(t, result.GrandTotal, totals, 0.01*float64(len(result.Summary)))
	assert.InDelta(t, 100.0, percentages, 0.05)
}

func TestSummarize_ZeroGrandTotal(t *testing.T) {
	result := Summarize(mustParse(t, `[
		{"id": 1, "amount": 0, "category": "A", "date": "2025-01-01"},
		{"id": 2, "amount": 0, "category": "B", "date": "2025-01-01"}
	]`))

	assert.Equal(t, 0.0, result.GrandTotal)
	for _, c := range result.Summary {
		assert.Equal(t, 0.0, c.Percentage)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	txs := mustParse(t, scenarioBatch)

	assert.Equal(t, Summarize(txs), Summarize(txs))
}

func TestSummarize_ExtremeExponentAmounts(t *testing.T) {
	txs := mustParse(t, `[
		{"id": 1, "amount": 1e-999999999, "category": "Food", "date": "2025-01-01"},
		{"id": 2, "amount": 5, "category": "Food", "date": "2025-01-02"}
	]`)

	done := make(chan SummaryResult, 1)
	go func() {
		done <- Summarize(txs)
	}()

	select {
	case result := <-done:
		assert.Equal(t, 5.0, result.GrandTotal)
		require.Len(t, result.Summary, 1)
		assert.Equal(t, 0.0, result.Summary[0].Lowest)
		assert.Equal(t, 2.5, result.OverallAverage)
	case <-time.After(5 * time.Second):
		t.Fatal("Summarize did not finish for a two record batch")
	}
}
