package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"accountType":   account.AccountType,
	})

	const query = `
INSERT INTO accounts (
	account_number,
	full_name,
	email_id,
	mobile_number,
	account_type,
	status,
	balance
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.FullName,
		account.EmailID,
		account.MobileNumber,
		account.AccountType,
		account.Status,
		account.Balance,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" {
			if strings.Contains(pqErr.Constraint, "account_number") {
				logger.Info("account repository create account number collision", logger.Fields{
					"accountNumber": account.AccountNumber,
				})
				return domain.Account{}, commons.ErrAccountNumberTaken
			}
			logger.Info("account repository create duplicate account", logger.Fields{
				"constraint": pqErr.Constraint,
			})
			return domain.Account{}, commons.ErrDuplicateAccount
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	logger.Info("account repository create success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) GetActiveByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id,
       account_number,
       full_name,
       email_id,
       mobile_number,
       account_type,
       status,
       balance,
       created_at,
       updated_at
FROM accounts
WHERE account_number = $1
  AND status = 'ACTIVE'`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.ID,
		&account.AccountNumber,
		&account.FullName,
		&account.EmailID,
		&account.MobileNumber,
		&account.AccountType,
		&account.Status,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ExistsByEmailOrMobile(ctx context.Context, emailID string, mobileNumber string) (bool, error) {
	const query = `
SELECT COUNT(1)
FROM accounts
WHERE email_id = $1
   OR mobile_number = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, emailID, mobileNumber).Scan(&count); err != nil {
		logger.Error("account repository exists by email or mobile failed", err, nil)
		return false, fmt.Errorf("check account by email or mobile: %w", err)
	}

	return count > 0, nil
}
