package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	const query = `
SELECT id,
       transaction_id,
       account_number,
       transaction_type,
       transaction_amount,
       transaction_date,
       created_at
FROM transactions
WHERE transaction_id = $1`

	var txn domain.Transaction
	if err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&txn.ID,
		&txn.TransactionID,
		&txn.AccountNumber,
		&txn.Type,
		&txn.Amount,
		&txn.TransactionDate,
		&txn.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		logger.Error("transaction repository get by transaction id failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return domain.Transaction{}, fmt.Errorf("get transaction by transaction id: %w", err)
	}

	return txn, nil
}

// ApplyTransaction commits the transaction insert and the balance mutation
// as one unit. The UNIQUE constraint on transaction_id guarantees at most
// one insert per idempotency key even under concurrent identical requests,
// and the conditional UPDATE serializes concurrent movements on the same
// account at the row level. The insert runs first so that of two racing
// requests with the same id the loser is reported as a duplicate rather
// than falling through to the funds check against the winner's balance.
func (r *TransactionRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
	logger.Info("transaction repository apply transaction", logger.Fields{
		"transactionId":   txn.TransactionID,
		"accountNumber":   txn.AccountNumber,
		"transactionType": txn.Type,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("begin apply transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `
INSERT INTO transactions (
	transaction_id,
	account_number,
	transaction_type,
	transaction_amount,
	transaction_date
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	var (
		id        string
		createdAt time.Time
	)
	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		txn.TransactionID,
		txn.AccountNumber,
		txn.Type,
		txn.Amount,
		txn.TransactionDate,
	).Scan(&id, &createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" {
			logger.Info("transaction repository duplicate transaction id", logger.Fields{
				"transactionId": txn.TransactionID,
			})
			err = commons.ErrDuplicateTransaction
			return domain.Transaction{}, decimal.Zero, err
		}
		logger.Error("transaction repository insert failed", err, logger.Fields{
			"transactionId": txn.TransactionID,
		})
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("insert transaction: %w", err)
	}

	updateQuery := `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
RETURNING balance`
	if txn.Type == domain.TransactionTypeDebit {
		updateQuery = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
  AND balance >= $2::numeric
RETURNING balance`
	}

	var newBalance decimal.Decimal
	if err = tx.QueryRowContext(ctx, updateQuery, txn.AccountNumber, txn.Amount).Scan(&newBalance); err != nil {
		if err == sql.ErrNoRows {
			// The rollback in the deferred handler undoes the insert.
			err = r.classifyBalanceUpdateMiss(ctx, tx, txn.AccountNumber)
			return domain.Transaction{}, decimal.Zero, err
		}
		logger.Error("transaction repository balance update failed", err, logger.Fields{
			"accountNumber": txn.AccountNumber,
		})
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("update account balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit tx failed", err, nil)
		return domain.Transaction{}, decimal.Zero, fmt.Errorf("commit apply transaction: %w", err)
	}

	txn.ID = id
	txn.CreatedAt = createdAt

	logger.Info("transaction repository apply transaction success", logger.Fields{
		"transactionId": txn.TransactionID,
		"accountNumber": txn.AccountNumber,
	})

	return txn, newBalance, nil
}

// A zero-row balance update either means the account vanished or, for a
// debit, that the funds check failed inside the database.
func (r *TransactionRepository) classifyBalanceUpdateMiss(ctx context.Context, tx *sql.Tx, accountNumber string) error {
	var count int
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM accounts WHERE account_number = $1 AND status = 'ACTIVE'`,
		accountNumber,
	).Scan(&count); err != nil {
		return fmt.Errorf("classify balance update miss: %w", err)
	}

	if count == 0 {
		return commons.ErrRecordNotFound
	}
	return commons.ErrInsufficientBalance
}

func (r *TransactionRepository) FindPageByAccountNumber(ctx context.Context, accountNumber string, page int, limit int) ([]domain.Transaction, int64, error) {
	// Count and page come from one repeatable-read snapshot so the totals
	// always agree with the returned rows.
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		logger.Error("transaction repository begin read tx failed", err, nil)
		return nil, 0, fmt.Errorf("begin find transactions page: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM transactions WHERE account_number = $1`,
		accountNumber,
	).Scan(&total); err != nil {
		logger.Error("transaction repository count failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	const query = `
SELECT id,
       transaction_id,
       account_number,
       transaction_type,
       transaction_amount,
       transaction_date,
       created_at
FROM transactions
WHERE account_number = $1
ORDER BY transaction_date ASC, id ASC
LIMIT $2 OFFSET $3`

	rows, err := tx.QueryContext(ctx, query, accountNumber, limit, page*limit)
	if err != nil {
		logger.Error("transaction repository find page failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"page":          page,
			"limit":         limit,
		})
		return nil, 0, fmt.Errorf("find transactions page: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.TransactionID,
			&txn.AccountNumber,
			&txn.Type,
			&txn.Amount,
			&txn.TransactionDate,
			&txn.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit find transactions page: %w", err)
	}

	return transactions, total, nil
}
