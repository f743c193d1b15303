package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

// AccountNumberGenerator produces candidate account numbers. Generated
// numbers are not assumed collision-free; the service retries against the
// store's uniqueness constraint.
type AccountNumberGenerator func() string

const accountNumberAttempts = 5

type AccountService struct {
	accountRepo           repo_interfaces.AccountRepository
	generateAccountNumber AccountNumberGenerator
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository, generator AccountNumberGenerator) *AccountService {
	if generator == nil {
		generator = DefaultAccountNumberGenerator
	}
	return &AccountService{
		accountRepo:           accountRepo,
		generateAccountNumber: generator,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", err.Error()), err
	}

	emailID := strings.TrimSpace(req.EmailID)
	mobileNumber := strings.TrimSpace(req.MobileNumber)

	exists, err := s.accountRepo.ExistsByEmailOrMobile(ctx, emailID, mobileNumber)
	if err != nil {
		logger.Error("account service create account uniqueness check failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}
	if exists {
		message := fmt.Sprintf("Account already exists either with emailId: %s or mobileNumber: %s", emailID, mobileNumber)
		logger.Info("account service create account duplicate", logger.Fields{
			"payload": logger.SanitizePayload(req),
		})
		return commons.ErrorResponse[models.CreateAccountResponse](message), commons.ErrDuplicateAccount
	}

	account := domain.Account{
		FullName:     strings.TrimSpace(req.FullName),
		EmailID:      emailID,
		MobileNumber: mobileNumber,
		AccountType:  domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Status:       domain.AccountStatusActive,
		Balance:      decimal.Zero,
	}

	var created domain.Account
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber = s.generateAccountNumber()
		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, commons.ErrDuplicateAccount) {
			// Concurrent creation with the same email or mobile won the race.
			message := fmt.Sprintf("Account already exists either with emailId: %s or mobileNumber: %s", emailID, mobileNumber)
			return commons.ErrorResponse[models.CreateAccountResponse](message), commons.ErrDuplicateAccount
		}
		if !errors.Is(err, commons.ErrAccountNumberTaken) {
			logger.Error("account service create account repository failed", err, nil)
			return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}
	if err != nil {
		logger.Error("account service create account number generation exhausted", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := models.CreateAccountResponse{
		AccountNumber: created.AccountNumber,
		AccountType:   string(created.AccountType),
		Status:        string(created.Status),
		CreatedAt:     created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("Account created successfully", response), nil
}

func (s *AccountService) FetchBalance(ctx context.Context, accountNumber string) (commons.Response[models.BalanceResponse], error) {
	logger.Info("account service fetch balance request", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", "accountNumber is required"), fmt.Errorf("accountNumber is required")
	}

	account, err := s.accountRepo.GetActiveByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service fetch balance failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			message := fmt.Sprintf("Account does not exist with accountNumber: %s", accountNumber)
			return commons.ErrorResponse[models.BalanceResponse](message), err
		}
		return commons.ErrorResponse[models.BalanceResponse]("failed to fetch balance", "Unable to fetch balance right now"), err
	}

	response := models.BalanceResponse{
		AccountNumber:  account.AccountNumber,
		AccountBalance: account.Balance.StringFixed(2),
	}

	logger.Info("account service fetch balance success", logger.Fields{
		"accountNumber": response.AccountNumber,
	})

	return commons.SuccessResponse("Account balance fetched successfully", response), nil
}

func DefaultAccountNumberGenerator() string {
	return fmt.Sprintf("%010d", rand.Int64N(10_000_000_000))
}
