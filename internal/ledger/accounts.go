// Package ledger provides in-memory account and character stores used when the
// service runs without a database, and by tests.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/utils"
)

// MemoryAccounts is an in-memory repository.Accounts
type MemoryAccounts struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

// NewMemoryAccounts creates an empty account store
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{balances: make(map[string]uint64)}
}

// Credit adds amount to the account, opening it if needed
func (m *MemoryAccounts) Credit(ctx context.Context, account string, amount uint64) error {
	if account == "" {
		return fmt.Errorf("%w: account is required", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance, err := utils.CheckedAdd(m.balances[account], amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", account, err)
	}
	m.balances[account] = balance
	return nil
}

// DebitFrom removes amount from the account
func (m *MemoryAccounts) DebitFrom(ctx context.Context, account string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[account]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account)
	}
	if balance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", domain.ErrInsufficientFunds, account, balance, amount)
	}
	m.balances[account] = balance - amount
	return nil
}

// CreditBatch validates every credit before applying any of them
func (m *MemoryAccounts) CreditBatch(ctx context.Context, payouts []domain.Payout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[string]uint64, len(payouts))
	for _, p := range payouts {
		if p.Player == "" {
			return fmt.Errorf("%w: account is required", domain.ErrInvalidInput)
		}
		current, seen := next[p.Player]
		if !seen {
			current = m.balances[p.Player]
		}
		balance, err := utils.CheckedAdd(current, p.Amount)
		if err != nil {
			return fmt.Errorf("credit %s: %w", p.Player, err)
		}
		next[p.Player] = balance
	}

	for account, balance := range next {
		m.balances[account] = balance
	}
	return nil
}

// GetBalance returns the account balance, zero for unknown accounts
func (m *MemoryAccounts) GetBalance(ctx context.Context, account string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[account], nil
}

// Accounts lists every account sorted by id
func (m *MemoryAccounts) Accounts(ctx context.Context) ([]domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(m.balances))
	for id, balance := range m.balances {
		accounts = append(accounts, domain.Account{ID: id, Balance: balance})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
