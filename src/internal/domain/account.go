package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
)

type Account struct {
	ID            string
	AccountNumber string
	FullName      string
	EmailID       string
	MobileNumber  string
	AccountType   AccountType
	Status        AccountStatus
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
