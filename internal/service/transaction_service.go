package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spend-analytics/internal/storage"
	"github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// UploadResult describes a batch that replaced the stored transactions.
type UploadResult struct {
	BatchID    uuid.UUID
	Count      int
	Categories []string
}

// StoreStatus reports what is currently held in storage.
type StoreStatus struct {
	TransactionCount int
	BatchID          uuid.UUID
	UploadedAt       time.Time
	CachedResults    int
}

// TransactionService handles uploading and listing transactions.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// Upload validates a raw JSON batch and, if every record is valid, replaces
// the stored transactions with it. A *transaction.ValidationError is returned
// unwrapped so callers can report it verbatim.
func (s *TransactionService) Upload(ctx context.Context, raw []byte) (*UploadResult, error) {
	batch, err := transaction.ParseBatch(raw)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.storage.Replace(batch.Transactions)
	if err != nil {
		return nil, fmt.Errorf("TransactionService.Upload: %w", err)
	}

	return &UploadResult{
		BatchID:    snapshot.BatchID(),
		Count:      len(snapshot.Transactions()),
		Categories: batch.Categories,
	}, nil
}

// ListTransactions returns every stored transaction in upload order.
func (s *TransactionService) ListTransactions(ctx context.Context) []transaction.Transaction {
	return s.storage.Current()
}

// Status returns the size and identity of the stored batch.
func (s *TransactionService) Status(ctx context.Context) StoreStatus {
	snapshot := s.storage.Snapshot()
	return StoreStatus{
		TransactionCount: len(snapshot.Transactions()),
		BatchID:          snapshot.BatchID(),
		UploadedAt:       snapshot.UploadedAt(),
		CachedResults:    snapshot.CacheSize(),
	}
}
