package repository

import (
	"context"

	"github.com/osse101/questledger/internal/domain"
)

// History defines the interface for settlement history persistence
type History interface {
	SaveDistribution(ctx context.Context, dist domain.Distribution) error
	// GetDistribution returns domain.ErrSettlementNotFound for unsettled periods
	GetDistribution(ctx context.Context, period uint64) (*domain.Distribution, error)
	// ListDistributions returns the most recent settlements first
	ListDistributions(ctx context.Context, limit int) ([]domain.Distribution, error)
}
