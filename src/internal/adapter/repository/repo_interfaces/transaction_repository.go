package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
)

type TransactionRepository interface {
	GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error)
	// ApplyTransaction performs the balance mutation and the transaction
	// insert in a single database transaction. It returns the stored
	// transaction and the balance after the movement.
	ApplyTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error)
	FindPageByAccountNumber(ctx context.Context, accountNumber string, page int, limit int) ([]domain.Transaction, int64, error)
}
