package storage

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-analytics/internal/cache"
	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// Snapshot is one uploaded batch together with the results derived from it.
// A Snapshot is never modified after it is published, apart from its cache.
type Snapshot struct {
	transactions []transaction.Transaction
	batchID      uuid.UUID
	uploadedAt   time.Time
	cache        *cache.MemoryCache[any]
}

func newSnapshot(txs []transaction.Transaction, batchID uuid.UUID, uploadedAt time.Time) *Snapshot {
	return &Snapshot{
		transactions: txs,
		batchID:      batchID,
		uploadedAt:   uploadedAt,
		cache:        cache.NewMemoryCache[any](),
	}
}

// Transactions returns the batch in upload order. Callers must not modify it.
func (s *Snapshot) Transactions() []transaction.Transaction {
	return s.transactions
}

// BatchID is uuid.Nil until the first upload.
func (s *Snapshot) BatchID() uuid.UUID {
	return s.batchID
}

func (s *Snapshot) UploadedAt() time.Time {
	return s.uploadedAt
}

func (s *Snapshot) CacheGet(key string) (any, bool) {
	return s.cache.Get(key)
}

func (s *Snapshot) CachePut(key string, value any) {
	s.cache.Put(key, value)
}

// CacheSize is the number of results cached for this batch.
func (s *Snapshot) CacheSize() int {
	return s.cache.Size()
}

// Storage holds the active transaction batch for the lifetime of the process.
// Replace publishes a new Snapshot with a single atomic pointer swap, so a
// reader sees either the whole previous batch or the whole new one.
type Storage struct {
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	s := &Storage{now: time.Now}
	s.current.Store(newSnapshot(nil, uuid.Nil, time.Time{}))
	return s
}

// Replace swaps in a new batch and drops every cached result of the old one.
func (s *Storage) Replace(txs []transaction.Transaction) (*Snapshot, error) {
	batchID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	next := newSnapshot(slices.Clone(txs), batchID, s.now().UTC())
	previous := s.current.Swap(next)
	previous.cache.InvalidateAll()

	return next, nil
}

// Snapshot returns the active snapshot. Request handlers should load it once
// and compute everything from that value.
func (s *Storage) Snapshot() *Snapshot {
	return s.current.Load()
}

// Current returns the active transactions, possibly empty.
func (s *Storage) Current() []transaction.Transaction {
	return s.Snapshot().Transactions()
}

func (s *Storage) CacheGet(key string) (any, bool) {
	return s.Snapshot().CacheGet(key)
}

func (s *Storage) CachePut(key string, value any) {
	s.Snapshot().CachePut(key, value)
}

// InvalidateCache clears cached results for the active batch.
func (s *Storage) InvalidateCache() {
	s.Snapshot().cache.InvalidateAll()
}
