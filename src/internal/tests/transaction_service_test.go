package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/usecase/services"
)

type transactionRepoStub struct {
	getByTransactionIDFn func(ctx context.Context, transactionID string) (domain.Transaction, error)
	applyFn              func(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error)
	findPageFn           func(ctx context.Context, accountNumber string, page int, limit int) ([]domain.Transaction, int64, error)
}

func (s transactionRepoStub) GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	if s.getByTransactionIDFn != nil {
		return s.getByTransactionIDFn(ctx, transactionID)
	}
	return domain.Transaction{}, commons.ErrRecordNotFound
}

func (s transactionRepoStub) ApplyTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, txn)
	}
	txn.ID = "txn-1"
	return txn, decimal.Zero, nil
}

func (s transactionRepoStub) FindPageByAccountNumber(ctx context.Context, accountNumber string, page int, limit int) ([]domain.Transaction, int64, error) {
	if s.findPageFn != nil {
		return s.findPageFn(ctx, accountNumber, page, limit)
	}
	return nil, 0, nil
}

func activeAccountRepo(balance int64) accountRepoStub {
	return accountRepoStub{
		getActiveFn: func(_ context.Context, accountNumber string) (domain.Account, error) {
			return domain.Account{
				AccountNumber: accountNumber,
				Balance:       decimal.NewFromInt(balance),
				Status:        domain.AccountStatusActive,
			}, nil
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 30, 5, 0, time.UTC)
}

func transactionRequest(transactionID string, amount int64) models.TransactionRequest {
	return models.TransactionRequest{
		AccountNumber: "123456",
		TransactionID: transactionID,
		Amount:        decimal.NewFromInt(amount),
	}
}

func TestTransactionServiceDebitReportsMissingAccountBeforeDuplicateCheck(t *testing.T) {
	duplicateChecked := false
	txnRepo := transactionRepoStub{
		getByTransactionIDFn: func(_ context.Context, _ string) (domain.Transaction, error) {
			duplicateChecked = true
			return domain.Transaction{TransactionID: "T1"}, nil
		},
	}
	svc := services.NewTransactionService(accountRepoStub{}, txnRepo, fixedClock)

	resp, err := svc.Debit(context.Background(), transactionRequest("T1", 10))

	require.ErrorIs(t, err, commons.ErrRecordNotFound)
	assert.Equal(t, "Account does not exist with accountNumber: 123456", resp.Message)
	assert.False(t, duplicateChecked, "duplicate check must not run for a missing account")
}

func TestTransactionServiceDebitDuplicateTransactionID(t *testing.T) {
	applyCalled := false
	txnRepo := transactionRepoStub{
		getByTransactionIDFn: func(_ context.Context, transactionID string) (domain.Transaction, error) {
			return domain.Transaction{TransactionID: transactionID}, nil
		},
		applyFn: func(_ context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
			applyCalled = true
			return txn, decimal.Zero, nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, fixedClock)

	resp, err := svc.Debit(context.Background(), transactionRequest("T1", 10))

	require.ErrorIs(t, err, commons.ErrDuplicateTransaction)
	assert.Equal(t, "Transaction was already performed with transactionId: T1", resp.Message)
	assert.False(t, applyCalled, "no balance mutation may happen for a duplicate id")
}

func TestTransactionServiceDebitInsufficientFunds(t *testing.T) {
	applyCalled := false
	txnRepo := transactionRepoStub{
		applyFn: func(_ context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
			applyCalled = true
			return txn, decimal.Zero, nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, fixedClock)

	resp, err := svc.Debit(context.Background(), transactionRequest("T1", 150))

	require.ErrorIs(t, err, commons.ErrInsufficientBalance)
	assert.Equal(t, "There are insufficient funds in your account. Please provide different amount.", resp.Message)
	assert.False(t, applyCalled, "balance must stay untouched when funds are insufficient")
}

func TestTransactionServiceDebitSuccess(t *testing.T) {
	var applied domain.Transaction
	txnRepo := transactionRepoStub{
		applyFn: func(_ context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
			applied = txn
			txn.ID = "txn-1"
			return txn, decimal.NewFromInt(90), nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, fixedClock)

	resp, err := svc.Debit(context.Background(), transactionRequest("T1", 10))

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Account debited successfully", resp.Message)
	assert.Equal(t, "90.00", resp.Data.AccountBalance)
	assert.Equal(t, "DEBIT", resp.Data.TransactionType)
	assert.Equal(t, "T1", resp.Data.TransactionID)
	assert.Equal(t, "05-03-2024 14:30:05", resp.Data.TransactionDate)
	assert.Equal(t, fixedClock(), applied.TransactionDate)
	assert.Equal(t, domain.TransactionTypeDebit, applied.Type)
}

func TestTransactionServiceCreditSuccess(t *testing.T) {
	txnRepo := transactionRepoStub{
		applyFn: func(_ context.Context, txn domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
			txn.ID = "txn-1"
			return txn, decimal.NewFromInt(110), nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, fixedClock)

	resp, err := svc.Credit(context.Background(), transactionRequest("T1", 10))

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Account credited successfully", resp.Message)
	assert.Equal(t, "110.00", resp.Data.AccountBalance)
	assert.Equal(t, "CREDIT", resp.Data.TransactionType)
}

// Two debits of 60 race with the same id against a balance of 100. The
// loser's pre-checks see the stale balance and pass; the store reports the
// duplicate id, and that must win over any funds outcome so the caller is
// never told to retry an already-applied movement with a smaller amount.
func TestTransactionServiceDebitDuplicateLostRace(t *testing.T) {
	txnRepo := transactionRepoStub{
		applyFn: func(_ context.Context, _ domain.Transaction) (domain.Transaction, decimal.Decimal, error) {
			return domain.Transaction{}, decimal.Zero, commons.ErrDuplicateTransaction
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, fixedClock)

	resp, err := svc.Debit(context.Background(), transactionRequest("T1", 60))

	require.ErrorIs(t, err, commons.ErrDuplicateTransaction)
	assert.Equal(t, "Transaction was already performed with transactionId: T1", resp.Message)
	assert.NotEqual(t, "There are insufficient funds in your account. Please provide different amount.", resp.Message)
}

func TestTransactionServiceValidationError(t *testing.T) {
	svc := services.NewTransactionService(accountRepoStub{}, transactionRepoStub{}, nil)

	_, err := svc.Debit(context.Background(), models.TransactionRequest{})
	require.Error(t, err)

	_, err = svc.Credit(context.Background(), models.TransactionRequest{
		AccountNumber: "123456",
		TransactionID: "THIS-ID-IS-FAR-TOO-LONG-TO-ACCEPT",
		Amount:        decimal.NewFromInt(10),
	})
	require.Error(t, err)
}

func TestTransactionServiceHistoryAccountMissing(t *testing.T) {
	svc := services.NewTransactionService(accountRepoStub{}, transactionRepoStub{}, nil)

	resp, err := svc.GetAllTransactions(context.Background(), "123456", 0, 10)

	require.ErrorIs(t, err, commons.ErrRecordNotFound)
	assert.Equal(t, "Account does not exist with accountNumber: 123456", resp.Message)
}

func TestTransactionServiceHistoryNoTransactions(t *testing.T) {
	svc := services.NewTransactionService(activeAccountRepo(100), transactionRepoStub{}, nil)

	resp, err := svc.GetAllTransactions(context.Background(), "123456", 0, 10)

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Success, "empty history is a soft success")
	assert.Equal(t, "There were no transactions performed on accountNumber: 123456", resp.Message)
	assert.Empty(t, resp.Data.Transactions)
	assert.EqualValues(t, 0, resp.Data.TotalNoOfPages)
	assert.EqualValues(t, 0, resp.Data.TotalNoOfTransactions)
}

func TestTransactionServiceHistoryPageExceeded(t *testing.T) {
	txnRepo := transactionRepoStub{
		findPageFn: func(_ context.Context, _ string, _ int, _ int) ([]domain.Transaction, int64, error) {
			return nil, 2, nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, nil)

	resp, err := svc.GetAllTransactions(context.Background(), "123456", 2, 1)

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Success, "page overflow is a soft success")
	assert.Equal(t, "Requested page exceeds total number of pages: 2", resp.Message)
	assert.Empty(t, resp.Data.Transactions)
	assert.EqualValues(t, 2, resp.Data.TotalNoOfPages)
	assert.EqualValues(t, 2, resp.Data.TotalNoOfTransactions)
}

func TestTransactionServiceHistoryNormalPage(t *testing.T) {
	txnRepo := transactionRepoStub{
		findPageFn: func(_ context.Context, accountNumber string, _ int, _ int) ([]domain.Transaction, int64, error) {
			return []domain.Transaction{
				{
					ID:              "txn-1",
					TransactionID:   "T1",
					AccountNumber:   accountNumber,
					Type:            domain.TransactionTypeCredit,
					Amount:          decimal.NewFromInt(10),
					TransactionDate: fixedClock(),
				},
			}, 2, nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, nil)

	resp, err := svc.GetAllTransactions(context.Background(), "123456", 0, 1)

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Transactions fetched successfully", resp.Message)
	require.Len(t, resp.Data.Transactions, 1)
	assert.Equal(t, "10.00", resp.Data.Transactions[0].TransactionAmount)
	assert.Equal(t, "CREDIT", resp.Data.Transactions[0].TransactionType)
	assert.Equal(t, "05-03-2024 14:30:05", resp.Data.Transactions[0].TransactionDate)
	assert.EqualValues(t, 2, resp.Data.TotalNoOfPages)
	assert.EqualValues(t, 2, resp.Data.TotalNoOfTransactions)
}

func TestTransactionServiceHistoryNormalizesDegenerateBounds(t *testing.T) {
	var gotPage, gotLimit int
	txnRepo := transactionRepoStub{
		findPageFn: func(_ context.Context, _ string, page int, limit int) ([]domain.Transaction, int64, error) {
			gotPage = page
			gotLimit = limit
			return nil, 0, nil
		},
	}
	svc := services.NewTransactionService(activeAccountRepo(100), txnRepo, nil)

	_, err := svc.GetAllTransactions(context.Background(), "123456", -3, 500)

	require.NoError(t, err)
	assert.Equal(t, 0, gotPage)
	assert.Equal(t, 10, gotLimit)
}
