package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Reason identifies which validation rule rejected a batch.
type Reason string

const (
	ReasonNotAList       Reason = "NotAList"
	ReasonEmptyBatch     Reason = "EmptyBatch"
	ReasonMissingFields  Reason = "MissingFields"
	ReasonInvalidAmount  Reason = "InvalidAmount"
	ReasonNegativeAmount Reason = "NegativeAmount"
	ReasonEmptyCategory  Reason = "EmptyCategory"
)

var requiredFields = []string{"id", "amount", "category", "date"}

// ValidationError describes why an uploaded batch was rejected. Index is the
// position of the offending record, or -1 for batch-level failures.
type ValidationError struct {
	Reason Reason
	Index  int
	Value  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonNotAList:
		return "Invalid data format. Expected JSON array of transactions"
	case ReasonEmptyBatch:
		return "Empty transaction list. Please provide at least one transaction"
	case ReasonMissingFields:
		return fmt.Sprintf("Transaction at index %d is missing required fields: %s", e.Index, strings.Join(requiredFields, ", "))
	case ReasonInvalidAmount:
		return fmt.Sprintf("Transaction at index %d has invalid amount: %s", e.Index, e.Value)
	case ReasonNegativeAmount:
		return fmt.Sprintf("Transaction at index %d has negative amount", e.Index)
	case ReasonEmptyCategory:
		return fmt.Sprintf("Transaction at index %d has empty category", e.Index)
	}
	return fmt.Sprintf("transaction at index %d is invalid: %s", e.Index, e.Reason)
}

// ParseBatch decodes an uploaded JSON document into a batch of transactions.
// The first invalid record rejects the whole batch.
func ParseBatch(raw []byte) (*Batch, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ValidationError{Reason: ReasonNotAList, Index: -1}
	}
	if decoder.More() {
		return nil, &ValidationError{Reason: ReasonNotAList, Index: -1}
	}

	records, ok := doc.([]any)
	if !ok {
		return nil, &ValidationError{Reason: ReasonNotAList, Index: -1}
	}
	if len(records) == 0 {
		return nil, &ValidationError{Reason: ReasonEmptyBatch, Index: -1}
	}

	batch := &Batch{Transactions: make([]Transaction, 0, len(records))}
	seen := make(map[string]struct{})

	for idx, item := range records {
		txn, err := parseRecord(idx, item)
		if err != nil {
			return nil, err
		}
		batch.Transactions = append(batch.Transactions, txn)
		if _, ok := seen[txn.category]; !ok {
			seen[txn.category] = struct{}{}
			batch.Categories = append(batch.Categories, txn.category)
		}
	}

	return batch, nil
}

func parseRecord(idx int, item any) (Transaction, error) {
	record, ok := item.(map[string]any)
	if !ok {
		return Transaction{}, &ValidationError{Reason: ReasonMissingFields, Index: idx}
	}
	for _, field := range requiredFields {
		if _, ok := record[field]; !ok {
			return Transaction{}, &ValidationError{Reason: ReasonMissingFields, Index: idx}
		}
	}

	amount, err := parseAmount(record["amount"])
	if err != nil {
		return Transaction{}, &ValidationError{Reason: ReasonInvalidAmount, Index: idx, Value: textOf(record["amount"])}
	}
	if amount.IsNegative() {
		return Transaction{}, &ValidationError{Reason: ReasonNegativeAmount, Index: idx}
	}

	category := strings.TrimSpace(textOf(record["category"]))
	if category == "" {
		return Transaction{}, &ValidationError{Reason: ReasonEmptyCategory, Index: idx}
	}

	id, err := json.Marshal(record["id"])
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction.parseRecord: encode id at index %d: %w", idx, err)
	}

	return Transaction{
		id:       id,
		amount:   amount,
		category: category,
		date:     strings.TrimSpace(textOf(record["date"])),
	}, nil
}

// amountExponentLimit bounds the decimal exponent kept verbatim. Sums rescale
// to a shared exponent, so it also bounds the size of every intermediate.
const amountExponentLimit = 64

// parseAmount accepts JSON numbers and numeric strings. Amounts whose exponent
// is out of range go through float64: tiny values collapse to zero and values
// beyond float64 range are rejected.
func parseAmount(v any) (decimal.Decimal, error) {
	var text string
	switch value := v.(type) {
	case json.Number:
		text = value.String()
	case string:
		text = strings.TrimSpace(value)
	default:
		return decimal.Zero, fmt.Errorf("amount of type %T is not numeric", v)
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := amount.Exponent(); exp >= -amountExponentLimit && exp <= amountExponentLimit {
		return amount, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && f == 0) {
		return decimal.Zero, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("amount %s is out of range", text)
	}
	return decimal.NewFromFloat(f), nil
}

// textOf renders a decoded JSON value as text: strings as-is, everything else
// as its JSON encoding.
func textOf(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return "null"
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
