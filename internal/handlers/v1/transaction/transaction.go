package transaction

import (
	"encoding/json"

	stored "github.com/carson-networks/spend-analytics/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID       any     `json:"id" doc:"Identifier as uploaded"`
	Amount   float64 `json:"amount" doc:"Non-negative amount"`
	Category string  `json:"category" doc:"Category label"`
	Date     string  `json:"date" doc:"Transaction date, YYYY-MM-DD"`
}

// NewTransactions converts stored transactions into response models.
func NewTransactions(txs []stored.Transaction) []Transaction {
	converted := make([]Transaction, len(txs))
	for i, txn := range txs {
		converted[i] = Transaction{
			ID:       json.RawMessage(txn.ID()),
			Amount:   txn.Amount().InexactFloat64(),
			Category: txn.Category(),
			Date:     txn.Date(),
		}
	}
	return converted
}
