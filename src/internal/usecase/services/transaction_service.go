package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

const transactionDateFormat = "02-01-2006 15:04:05"

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

type TransactionService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	now             func() time.Time
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	now func() time.Time,
) *TransactionService {
	if now == nil {
		now = time.Now
	}
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		now:             now,
	}
}

func (s *TransactionService) Debit(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	return s.perform(ctx, req, domain.TransactionTypeDebit)
}

func (s *TransactionService) Credit(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	return s.perform(ctx, req, domain.TransactionTypeCredit)
}

// perform runs the shared debit/credit state machine. The account lookup
// happens before the duplicate check so a bad account number never leaks
// duplicate-transaction status, and the duplicate check happens before the
// funds check so a retried request is reported as already applied rather
// than as insufficient funds.
func (s *TransactionService) perform(ctx context.Context, req models.TransactionRequest, txnType domain.TransactionType) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service request", logger.Fields{
		"transactionType": txnType,
		"payload":         logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	transactionID := strings.TrimSpace(req.TransactionID)

	account, err := s.accountRepo.GetActiveByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			message := fmt.Sprintf("Account does not exist with accountNumber: %s", accountNumber)
			return commons.ErrorResponse[models.TransactionResponse](message), err
		}
		logger.Error("transaction service account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	_, err = s.transactionRepo.GetByTransactionID(ctx, transactionID)
	if err == nil {
		message := fmt.Sprintf("Transaction was already performed with transactionId: %s", transactionID)
		logger.Info("transaction service duplicate transaction id", logger.Fields{
			"transactionId": transactionID,
		})
		return commons.ErrorResponse[models.TransactionResponse](message), commons.ErrDuplicateTransaction
	}
	if !errors.Is(err, commons.ErrRecordNotFound) {
		logger.Error("transaction service duplicate check failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	if txnType == domain.TransactionTypeDebit && account.Balance.Sub(req.Amount).IsNegative() {
		return insufficientFundsResponse(), commons.ErrInsufficientBalance
	}

	txn := domain.Transaction{
		TransactionID:   transactionID,
		AccountNumber:   accountNumber,
		Type:            txnType,
		Amount:          req.Amount,
		TransactionDate: s.now(),
	}

	created, newBalance, err := s.transactionRepo.ApplyTransaction(ctx, txn)
	if err != nil {
		switch {
		case errors.Is(err, commons.ErrDuplicateTransaction):
			// Lost the race against a concurrent request with the same id.
			message := fmt.Sprintf("Transaction was already performed with transactionId: %s", transactionID)
			return commons.ErrorResponse[models.TransactionResponse](message), err
		case errors.Is(err, commons.ErrInsufficientBalance):
			return insufficientFundsResponse(), err
		case errors.Is(err, commons.ErrRecordNotFound):
			message := fmt.Sprintf("Account does not exist with accountNumber: %s", accountNumber)
			return commons.ErrorResponse[models.TransactionResponse](message), err
		}
		logger.Error("transaction service apply failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"transactionId": transactionID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	response := models.TransactionResponse{
		AccountNumber:   accountNumber,
		AccountBalance:  newBalance.StringFixed(2),
		TransactionID:   created.TransactionID,
		TransactionType: string(created.Type),
		TransactionDate: created.TransactionDate.Format(transactionDateFormat),
	}

	message := "Account credited successfully"
	if txnType == domain.TransactionTypeDebit {
		message = "Account debited successfully"
	}

	logger.Info("transaction service success", logger.Fields{
		"accountNumber":   accountNumber,
		"transactionId":   created.TransactionID,
		"transactionType": created.Type,
	})

	return commons.SuccessResponse(message, response), nil
}

func (s *TransactionService) GetAllTransactions(ctx context.Context, accountNumber string, page int, limit int) (commons.Response[models.TransactionHistoryResponse], error) {
	logger.Info("transaction service history request", logger.Fields{
		"accountNumber": accountNumber,
		"page":          page,
		"limit":         limit,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return commons.ErrorResponse[models.TransactionHistoryResponse]("validation failed", "accountNumber is required"), fmt.Errorf("accountNumber is required")
	}

	// Bounds are enforced at the transport layer; degenerate values are
	// still normalized here.
	if page < 0 {
		page = 0
	}
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	if _, err := s.accountRepo.GetActiveByAccountNumber(ctx, accountNumber); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			message := fmt.Sprintf("Account does not exist with accountNumber: %s", accountNumber)
			return commons.ErrorResponse[models.TransactionHistoryResponse](message), err
		}
		logger.Error("transaction service history account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.TransactionHistoryResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	transactions, total, err := s.transactionRepo.FindPageByAccountNumber(ctx, accountNumber, page, limit)
	if err != nil {
		logger.Error("transaction service history page query failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"page":          page,
			"limit":         limit,
		})
		return commons.ErrorResponse[models.TransactionHistoryResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	if total == 0 {
		message := fmt.Sprintf("There were no transactions performed on accountNumber: %s", accountNumber)
		return commons.SuccessResponse(message, emptyHistoryResponse(0, 0)), nil
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	if int64(page) >= totalPages {
		message := fmt.Sprintf("Requested page exceeds total number of pages: %d", totalPages)
		return commons.SuccessResponse(message, emptyHistoryResponse(totalPages, total)), nil
	}

	dtos := make([]models.TransactionDto, 0, len(transactions))
	for _, txn := range transactions {
		dtos = append(dtos, models.TransactionDto{
			AccountNumber:     txn.AccountNumber,
			TransactionAmount: txn.Amount.StringFixed(2),
			TransactionType:   string(txn.Type),
			TransactionID:     txn.TransactionID,
			TransactionDate:   txn.TransactionDate.Format(transactionDateFormat),
		})
	}

	response := models.TransactionHistoryResponse{
		Transactions:          dtos,
		TotalNoOfPages:        totalPages,
		TotalNoOfTransactions: total,
	}

	logger.Info("transaction service history success", logger.Fields{
		"accountNumber": accountNumber,
		"returned":      len(dtos),
		"totalPages":    totalPages,
		"total":         total,
	})

	return commons.SuccessResponse("Transactions fetched successfully", response), nil
}

func insufficientFundsResponse() commons.Response[models.TransactionResponse] {
	return commons.ErrorResponse[models.TransactionResponse]("There are insufficient funds in your account. Please provide different amount.")
}

func emptyHistoryResponse(totalPages int64, total int64) models.TransactionHistoryResponse {
	return models.TransactionHistoryResponse{
		Transactions:          []models.TransactionDto{},
		TotalNoOfPages:        totalPages,
		TotalNoOfTransactions: total,
	}
}
