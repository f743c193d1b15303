package repo_interfaces

import (
	"context"

	"github.com/api-sage/wallet-ledger-service/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetActiveByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ExistsByEmailOrMobile(ctx context.Context, emailID string, mobileNumber string) (bool, error)
}
