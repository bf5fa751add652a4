package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/questledger/internal/domain"
)

// AccountRepository is the PostgreSQL value-transfer ledger.
// Every balance change is journalled in ledger_entries within the same statement batch.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Credit adds amount to the account, opening it if needed
func (r *AccountRepository) Credit(ctx context.Context, account string, amount uint64) error {
	if account == "" {
		return fmt.Errorf("%w: account is required", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := credit(ctx, tx, account, amount, LedgerReasonCredit); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// CreditBatch credits every payout in a single transaction
func (r *AccountRepository) CreditBatch(ctx context.Context, payouts []domain.Payout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	for _, p := range payouts {
		if p.Player == "" {
			return fmt.Errorf("%w: account is required", domain.ErrInvalidInput)
		}
		if err := credit(ctx, tx, p.Player, p.Amount, LedgerReasonPayout); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func credit(ctx context.Context, q querier, account string, amount uint64, reason string) error {
	delta, err := toInt64(amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", account, err)
	}

	query := `
		INSERT INTO accounts (account_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (account_id)
		DO UPDATE SET
			balance = accounts.balance + EXCLUDED.balance,
			updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, account, delta); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreditAccount, mapPgError(err))
	}

	return journal(ctx, q, account, delta, reason)
}

// DebitFrom removes amount from the account
func (r *AccountRepository) DebitFrom(ctx context.Context, account string, amount uint64) error {
	delta, err := toInt64(amount)
	if err != nil {
		return fmt.Errorf("debit %s: %w", account, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE account_id = $1 AND balance >= $2
	`
	tag, err := tx.Exec(ctx, query, account, delta)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDebitAccount, err)
	}

	if tag.RowsAffected() == 0 {
		var balance int64
		err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1`, account).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToCheckAccount, err)
		}
		return fmt.Errorf("%w: %s has %d, needs %d", domain.ErrInsufficientFunds, account, balance, amount)
	}

	if err := journal(ctx, tx, account, -delta, LedgerReasonDebit); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func journal(ctx context.Context, q querier, account string, delta int64, reason string) error {
	query := `
		INSERT INTO ledger_entries (account_id, delta, reason)
		VALUES ($1, $2, $3)
	`
	if _, err := q.Exec(ctx, query, account, delta, reason); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordLedgerRow, err)
	}
	return nil
}

// GetBalance returns the account balance, zero for unknown accounts
func (r *AccountRepository) GetBalance(ctx context.Context, account string) (uint64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1`, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return toUint64(balance)
}

// Accounts lists every account sorted by id
func (r *AccountRepository) Accounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, balance FROM accounts ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAccounts, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var id string
		var balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanAccount, err)
		}
		amount, err := toUint64(balance)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, domain.Account{ID: id, Balance: amount})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}
	return accounts, nil
}
