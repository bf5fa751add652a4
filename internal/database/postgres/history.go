package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/questledger/internal/domain"
)

// HistoryRepository stores settled distributions
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const settlementColumns = `settlement_id, period, pool_before, budget, total_weight, total, dust, forced, payouts, settled_at`

// SaveDistribution records a distribution. Saving the same period twice is a no-op.
func (r *HistoryRepository) SaveDistribution(ctx context.Context, dist domain.Distribution) error {
	payouts := dist.Payouts
	if payouts == nil {
		payouts = []domain.Payout{}
	}
	payoutsJSON, err := json.Marshal(payouts)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayouts, err)
	}

	amounts := make([]int64, 0, 6)
	for _, v := range []uint64{dist.Period, dist.PoolBefore, dist.Budget, dist.TotalWeight, dist.Total, dist.Dust} {
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		amounts = append(amounts, n)
	}

	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.Exec(ctx, query,
		dist.ID,
		amounts[0],
		amounts[1],
		amounts[2],
		amounts[3],
		amounts[4],
		amounts[5],
		dist.Forced,
		payoutsJSON,
		dist.SettledAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return nil
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSettlement, err)
	}
	return nil
}

// GetDistribution returns the distribution of a settled period
func (r *HistoryRepository) GetDistribution(ctx context.Context, period uint64) (*domain.Distribution, error) {
	p, err := toInt64(period)
	if err != nil {
		return nil, fmt.Errorf("%w: period %d", domain.ErrSettlementNotFound, period)
	}

	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE period = $1`
	dist, err := scanDistribution(r.db.QueryRow(ctx, query, p))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %d", domain.ErrSettlementNotFound, period)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettlement, err)
	}
	return dist, nil
}

// ListDistributions returns the most recent settlements first
func (r *HistoryRepository) ListDistributions(ctx context.Context, limit int) ([]domain.Distribution, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements ORDER BY period DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySettlements, err)
	}
	defer rows.Close()

	dists := []domain.Distribution{}
	for rows.Next() {
		dist, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanSettlement, err)
		}
		dists = append(dists, *dist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}
	return dists, nil
}

func scanDistribution(row pgx.Row) (*domain.Distribution, error) {
	var (
		dist                                        domain.Distribution
		period, before, budget, weight, total, dust int64
		payoutsJSON                                 []byte
	)
	err := row.Scan(
		&dist.ID,
		&period,
		&before,
		&budget,
		&weight,
		&total,
		&dust,
		&dist.Forced,
		&payoutsJSON,
		&dist.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		src int64
		dst *uint64
	}{
		{period, &dist.Period},
		{before, &dist.PoolBefore},
		{budget, &dist.Budget},
		{weight, &dist.TotalWeight},
		{total, &dist.Total},
		{dust, &dist.Dust},
	}
	for _, f := range fields {
		v, err := toUint64(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if err := json.Unmarshal(payoutsJSON, &dist.Payouts); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalPayouts, err)
	}
	return &dist, nil
}
