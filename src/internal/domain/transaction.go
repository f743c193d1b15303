package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction rows are append-only: once inserted they are never updated
// or deleted. TransactionID is the client-supplied idempotency key and is
// unique across all accounts.
type Transaction struct {
	ID              string
	TransactionID   string
	AccountNumber   string
	Type            TransactionType
	Amount          decimal.Decimal
	TransactionDate time.Time
	CreatedAt       time.Time
}
