package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/questledger/internal/domain"
)

// MemoryHistory is an in-memory repository.History
type MemoryHistory struct {
	mu      sync.RWMutex
	settled  map[uint64]domain.Distribution
}

// NewMemoryHistory creates an empty settlement store
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{settled: make(map[uint64]domain.Distribution)}
}

// SaveDistribution records a distribution. Saving the same period twice is a no-op.
func (m *MemoryHistory) SaveDistribution(ctx context.Context, dist domain.Distribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.settled[dist.Period]; ok {
		return nil
	}
	dist.Payouts = append([]domain.Payout(nil), dist.Payouts...)
	m.settled[dist.Period] = dist
	return nil
}

// GetDistribution returns the distribution of a settled period
func (m *MemoryHistory) GetDistribution(ctx context.Context, period uint64) (*domain.Distribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dist, ok := m.settled[period]
	if !ok {
		return nil, fmt.Errorf("%w: period %d", domain.ErrSettlementNotFound, period)
	}
	dist.Payouts = append([]domain.Payout(nil), dist.Payouts...)
	return &dist, nil
}

// ListDistributions returns the most recent settlements first
func (m *MemoryHistory) ListDistributions(ctx context.Context, limit int) ([]domain.Distribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dists := make([]domain.Distribution, 0, len(m.settled))
	for _, d := range m.settled {
		dists = append(dists, d)
	}
	sort.Slice(dists, func(i, j int) bool { return dists[i].Period > dists[j].Period })
	if limit >= 0 && len(dists) > limit {
		dists = dists[:limit]
	}
	return dists, nil
}
