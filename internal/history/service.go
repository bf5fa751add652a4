// Package history keeps the record of settled periods.
package history

import (
	"context"
	"fmt"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/repository"
)

// Service reads and records settlement history
type Service interface {
	Record(ctx context.Context, dist domain.Distribution) error
	ListSettlements(ctx context.Context, limit int) ([]domain.Distribution, error)
	GetSettlement(ctx context.Context, period uint64) (*domain.Distribution, error)
}

type service struct {
	repo repository.History
}

// NewService creates a history service backed by repo
func NewService(repo repository.History) Service {
	return &service{repo: repo}
}

// Record stores a distribution
func (s *service) Record(ctx context.Context, dist domain.Distribution) error {
	if err := s.repo.SaveDistribution(ctx, dist); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordSettlement, err)
	}
	logger.FromContext(ctx).Info(LogMsgSettlementRecorded,
		"period", dist.Period, "settlement_id", dist.ID, "total", dist.Total, "winners", len(dist.Payouts))
	return nil
}

// ListSettlements returns up to limit settlements, newest first.
// A non-positive limit selects DefaultListLimit.
func (s *service) ListSettlements(ctx context.Context, limit int) ([]domain.Distribution, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListDistributions(ctx, limit)
}

// GetSettlement returns the settlement of period or domain.ErrSettlementNotFound
func (s *service) GetSettlement(ctx context.Context, period uint64) (*domain.Distribution, error) {
	return s.repo.GetDistribution(ctx, period)
}
