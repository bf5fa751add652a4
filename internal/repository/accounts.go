package repository

import (
	"context"

	"github.com/osse101/questledger/internal/domain"
)

// Accounts defines the interface for player account balance persistence.
// It is the ValueTransfer collaborator of the season engine.
type Accounts interface {
	Credit(ctx context.Context, account string, amount uint64) error
	DebitFrom(ctx context.Context, account string, amount uint64) error
	// CreditBatch credits every payout or none of them
	CreditBatch(ctx context.Context, payouts []domain.Payout) error
	GetBalance(ctx context.Context, account string) (uint64, error)
	// Accounts lists every account sorted by id
	Accounts(ctx context.Context) ([]domain.Account, error)
}
