package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const maxTransactionIDLength = 20

type TransactionRequest struct {
	AccountNumber string          `json:"accountNumber"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}

	transactionID := strings.TrimSpace(r.TransactionID)
	if transactionID == "" {
		errs = append(errs, "transactionId is required")
	} else if len(transactionID) > maxTransactionIDLength {
		errs = append(errs, "transactionId must not exceed 20 characters")
	}

	if r.Amount.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, "amount must be at least 1")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	AccountNumber   string `json:"accountNumber"`
	AccountBalance  string `json:"accountBalance"`
	TransactionID   string `json:"transactionId"`
	TransactionType string `json:"transactionType"`
	TransactionDate string `json:"transactionDate"`
}

type TransactionDto struct {
	AccountNumber     string `json:"accountNumber"`
	TransactionAmount string `json:"transactionAmount"`
	TransactionType   string `json:"transactionType"`
	TransactionID     string `json:"transactionId"`
	TransactionDate   string `json:"transactionDate"`
}

type TransactionHistoryResponse struct {
	Transactions          []TransactionDto `json:"transactions"`
	TotalNoOfPages        int64            `json:"totalNoOfPages"`
	TotalNoOfTransactions int64            `json:"totalNoOfTransactions"`
}
