package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

func mustParse(t *testing.T, raw string) []transaction.Transaction {
	t.Helper()
	batch, err := transaction.ParseBatch([]byte(raw))
	require.NoError(t, err)
	return batch.Transactions
}

func TestNewStorage_Empty(t *testing.T) {
	store := NewStorage()

	assert.Empty(t, store.Current())
	assert.Equal(t, uuid.Nil, store.Snapshot().BatchID())
	assert.True(t, store.Snapshot().UploadedAt().IsZero())
}

func TestReplace_SwapsBatch(t *testing.T) {
	store := NewStorage()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	txs := mustParse(t, `[{"id": 1, "amount": 10, "category": "Food", "date": "2025-01-01"}]`)
	snap, err := store.Replace(txs)
	require.NoError(t, err)

	assert.Len(t, store.Current(), 1)
	assert.Same(t, snap, store.Snapshot())
	assert.NotEqual(t, uuid.Nil, snap.BatchID())
	assert.Equal(t, fixed, snap.UploadedAt())
}

func TestReplace_CopiesInput(t *testing.T) {
	store := NewStorage()
	txs := mustParse(t, `[
		{"id": 1, "amount": 10, "category": "Food", "date": "2025-01-01"},
		{"id": 2, "amount": 20, "category": "Travel", "date": "2025-01-02"}
	]`)

	_, err := store.Replace(txs)
	require.NoError(t, err)
	txs[0], txs[1] = txs[1], txs[0]

	assert.Equal(t, "Food", store.Current()[0].Category())
}

func TestReplace_InvalidatesCache(t *testing.T) {
	store := NewStorage()
	_, err := store.Replace(mustParse(t, `[{"id": 1, "amount": 10, "category": "Food", "date": "2025-01-01"}]`))
	require.NoError(t, err)

	store.CachePut("summary", "old")
	old := store.Snapshot()

	_, err = store.Replace(mustParse(t, `[{"id": 2, "amount": 5, "category": "Travel", "date": "2025-01-01"}]`))
	require.NoError(t, err)

	_, ok := store.CacheGet("summary")
	assert.False(t, ok, "new batch starts with an empty cache")
	_, ok = old.CacheGet("summary")
	assert.False(t, ok, "previous batch cache is cleared")
}

func TestCache_StaleWriterDoesNotLeak(t *testing.T) {
	store := NewStorage()
	_, err := store.Replace(mustParse(t, `[{"id": 1, "amount": 10, "category": "Food", "date": "2025-01-01"}]`))
	require.NoError(t, err)

	// A reader holding the old snapshot finishes after a replace.
	old := store.Snapshot()
	_, err = store.Replace(mustParse(t, `[{"id": 2, "amount": 5, "category": "Travel", "date": "2025-01-01"}]`))
	require.NoError(t, err)
	old.CachePut("summary", "stale")

	_, ok := store.CacheGet("summary")
	assert.False(t, ok)
}

func TestInvalidateCache(t *testing.T) {
	store := NewStorage()
	store.CachePut("summary", 1)
	store.CachePut("trends", 2)

	store.InvalidateCache()

	_, ok := store.CacheGet("summary")
	assert.False(t, ok)
	_, ok = store.CacheGet("trends")
	assert.False(t, ok)
}

func TestReplace_NoTornReads(t *testing.T) {
	store := NewStorage()
	small := mustParse(t, `[
		{"id": 1, "amount": 1, "category": "A", "date": "2025-01-01"},
		{"id": 2, "amount": 1, "category": "A", "date": "2025-01-01"}
	]`)
	large := mustParse(t, `[
		{"id": 1, "amount": 2, "category": "B", "date": "2025-01-01"},
		{"id": 2, "amount": 2, "category": "B", "date": "2025-01-01"},
		{"id": 3, "amount": 2, "category": "B", "date": "2025-01-01"}
	]`)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			next := small
			if i%2 == 0 {
				next = large
			}
			_, _ = store.Replace(next)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			txs := store.Current()
			if len(txs) == 0 {
				continue
			}
			category := txs[0].Category()
			for _, txn := range txs {
				assert.Equal(t, category, txn.Category())
			}
		}
	}()
	wg.Wait()
}
