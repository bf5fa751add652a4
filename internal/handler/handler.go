// Package handler implements the HTTP endpoints of the ledger API.
package handler

import (
	"context"
	"time"

	"github.com/osse101/questledger/internal/domain"
)

// Season is the part of the season engine the HTTP API drives
type Season interface {
	ApplyPoints(ctx context.Context, player string, points uint64) (domain.ScoreResult, error)
	CurrentPeriod() uint64
	LastKnownPeriod() uint64
	PeriodBounds(period uint64) (time.Time, time.Time)
	Leaderboard(period uint64) domain.LeaderboardSnapshot
	PoolBalance() uint64
	PlayerState(player string) (domain.PlayerPeriodState, bool)
	Multiplier(player string) domain.RewardMultiplier
	EffectiveWeight(ctx context.Context, player string) uint64
	RewardConfig() domain.RewardConfig
	Deposit(ctx context.Context, from string, amount uint64) (uint64, error)
	ForceSettle(ctx context.Context, period uint64) (*domain.Distribution, error)
	UpdateRewardConfig(ctx context.Context, cfg domain.RewardConfig) error
	SetMultiplier(ctx context.Context, player string, m domain.RewardMultiplier) error
}

// AccountLister lists ledger accounts for operators
type AccountLister interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
}

// Roller triggers a season rollover on demand
type Roller interface {
	RunOnce(ctx context.Context) (bool, error)
}
