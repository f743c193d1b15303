package models

import (
	"errors"
	"strings"
)

type CreateAccountRequest struct {
	FullName     string `json:"fullName"`
	EmailID      string `json:"emailId"`
	MobileNumber string `json:"mobileNumber"`
	AccountType  string `json:"accountType"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}

	email := strings.TrimSpace(r.EmailID)
	if email == "" {
		errs = append(errs, "emailId is required")
	} else if !isEmailLike(email) {
		errs = append(errs, "emailId must be a valid email address")
	}

	mobile := strings.TrimSpace(r.MobileNumber)
	if mobile == "" {
		errs = append(errs, "mobileNumber is required")
	} else if !isTenDigitMobileNumber(mobile) {
		errs = append(errs, "mobileNumber must be exactly 10 digits")
	}

	accountType := strings.ToUpper(strings.TrimSpace(r.AccountType))
	if accountType == "" {
		errs = append(errs, "accountType is required")
	} else if accountType != "SAVINGS" && accountType != "CURRENT" {
		errs = append(errs, "accountType must be one of SAVINGS, CURRENT")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type CreateAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

type BalanceResponse struct {
	AccountNumber  string `json:"accountNumber"`
	AccountBalance string `json:"accountBalance"`
}

func isEmailLike(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	if strings.Contains(domainPart, "@") {
		return false
	}
	dot := strings.LastIndex(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}

func isTenDigitMobileNumber(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}

	for _, ch := range mobile {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
