package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

const historyPathPrefix = "/api/v1/transaction/"

var errInvalidPage = errors.New("page must be a non-negative integer")
var errInvalidLimit = errors.New("limit must be an integer between 1 and 50")

type TransactionService interface {
	Debit(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	Credit(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetAllTransactions(ctx context.Context, accountNumber string, page int, limit int) (commons.Response[models.TransactionHistoryResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	debitHandler := http.HandlerFunc(c.debit)
	creditHandler := http.HandlerFunc(c.credit)
	historyHandler := http.HandlerFunc(c.history)
	if authMiddleware != nil {
		debitHandler = authMiddleware(debitHandler).ServeHTTP
		creditHandler = authMiddleware(creditHandler).ServeHTTP
		historyHandler = authMiddleware(historyHandler).ServeHTTP
	}

	mux.Handle("/api/v1/transaction/debit", debitHandler)
	mux.Handle("/api/v1/transaction/credit", creditHandler)
	mux.Handle(historyPathPrefix, historyHandler)
}

func (c *TransactionController) debit(w http.ResponseWriter, r *http.Request) {
	c.perform(w, r, domain.TransactionTypeDebit)
}

func (c *TransactionController) credit(w http.ResponseWriter, r *http.Request) {
	c.perform(w, r, domain.TransactionTypeCredit)
}

func (c *TransactionController) perform(w http.ResponseWriter, r *http.Request, txnType domain.TransactionType) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransactionResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		response := commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	var (
		response commons.Response[models.TransactionResponse]
		err      error
	)
	if txnType == domain.TransactionTypeDebit {
		response, err = c.service.Debit(r.Context(), req)
	} else {
		response, err = c.service.Credit(r.Context(), req)
	}
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.TransactionHistoryResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	accountNumber := strings.TrimPrefix(r.URL.Path, historyPathPrefix)
	if accountNumber == "" || strings.Contains(accountNumber, "/") {
		response := commons.ErrorResponse[models.TransactionHistoryResponse]("validation failed", "accountNumber is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	page, limit, err := parseHistoryQuery(r)
	if err != nil {
		response := commons.ErrorResponse[models.TransactionHistoryResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAllTransactions(r.Context(), accountNumber, page, limit)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func parseHistoryQuery(r *http.Request) (int, int, error) {
	page := 0
	limit := 10

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, errInvalidPage
		}
		page = parsed
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			return 0, 0, errInvalidLimit
		}
		limit = parsed
	}

	return page, limit, nil
}
