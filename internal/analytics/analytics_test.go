package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

const scenarioBatch = `[
	{"id": 1, "amount": 100, "category": "Food", "date": "2025-01-05"},
	{"id": 2, "amount": 50, "category": "Travel", "date": "2025-02-10"}
]`

func mustParse(t *testing.T, raw string) []transaction.Transaction {
	t.Helper()
	batch, err := transaction.ParseBatch([]byte(raw))
	require.NoError(t, err)
	return batch.Transactions
}
