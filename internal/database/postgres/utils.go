package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// toInt64 converts an amount to the BIGINT column range
func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d exceeds the storable range", domain.ErrArithmeticOverflow, v)
	}
	return int64(v), nil
}

// toUint64 converts a stored BIGINT back to an amount
func toUint64(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: negative stored value %d", domain.ErrArithmeticOverflow, v)
	}
	return uint64(v), nil
}

// mapPgError turns well-known PostgreSQL errors into domain errors
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeNumericOutOfRange {
		return fmt.Errorf("%w: %s", domain.ErrArithmeticOverflow, pgErr.Message)
	}
	return err
}
