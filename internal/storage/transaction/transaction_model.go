package transaction

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Transaction is a validated spending record. Values are only produced by
// ParseBatch, so every Transaction carries all four fields and a
// non-negative amount.
type Transaction struct {
	id       json.RawMessage
	amount   decimal.Decimal
	category string
	date     string
}

// ID returns the identifier exactly as it was uploaded (number, string or any
// other JSON value). Uniqueness is not enforced.
func (t Transaction) ID() json.RawMessage {
	return t.id
}

func (t Transaction) Amount() decimal.Decimal {
	return t.amount
}

func (t Transaction) Category() string {
	return t.category
}

// Date returns the trimmed date text, expected to be YYYY-MM-DD.
func (t Transaction) Date() string {
	return t.date
}

// Batch is the result of a successful ParseBatch call.
type Batch struct {
	Transactions []Transaction
	// Categories holds each distinct category once, in first-seen order.
	Categories []string
}
