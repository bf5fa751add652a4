// Package season runs the weekly scoring economy: it accumulates player scores per
// period, keeps the period leaderboards, and settles each finished period by paying
// a share of the reward pool to its top players.
//
// All mutable state lives in one Engine behind a single mutex, so every scoring,
// settlement and pool operation is atomic with respect to the others. Events are
// collected while the lock is held and published after it is released.
package season

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/leaderboard"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/multiplier"
)

// Clock supplies the current unix time in seconds
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current unix time in seconds
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// ValueTransfer moves value in and out of player accounts
type ValueTransfer interface {
	Credit(ctx context.Context, account string, amount uint64) error
	DebitFrom(ctx context.Context, account string, amount uint64) error
}

// BatchCrediter is implemented by transfers that can credit several accounts
// atomically. Settlement prefers it over one Credit call per winner.
type BatchCrediter interface {
	CreditBatch(ctx context.Context, payouts []domain.Payout) error
}

// CharacterData answers questions about a player's characters
type CharacterData interface {
	OwnsQualifyingAsset(ctx context.Context, player string) (bool, error)
	// LevelAndPower returns nil stats when the character does not exist
	LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error)
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Config holds the engine's start-up parameters
type Config struct {
	PeriodDuration time.Duration
	Rewards        domain.RewardConfig
}

// Engine owns player period states, period leaderboards, the reward pool and the
// reward configuration
type Engine struct {
	mu sync.Mutex

	clock      Clock
	transfer   ValueTransfer
	characters CharacterData
	publisher  EventPublisher
	newID      func() string

	periodSeconds uint64
	// lastKnown is the global period marker; zero until the first rollover
	lastKnown   uint64
	states      map[string]domain.PlayerPeriodState
	boards      map[uint64]*leaderboard.Board
	pool        uint64
	rewards     domain.RewardConfig
	multipliers *multiplier.Registry
}

// NewEngine creates an engine. characters and publisher may be nil.
func NewEngine(cfg Config, clock Clock, transfer ValueTransfer, characters CharacterData, publisher EventPublisher) (*Engine, error) {
	if cfg.PeriodDuration < time.Second {
		return nil, fmt.Errorf("%w: period duration must be at least one second, got %s", domain.ErrInvalidInput, cfg.PeriodDuration)
	}
	if cfg.Rewards.RewardPercentage > domain.MaxRewardPercentage {
		return nil, fmt.Errorf("%w: %d bps", domain.ErrPercentageTooHigh, cfg.Rewards.RewardPercentage)
	}
	if clock == nil || transfer == nil {
		return nil, fmt.Errorf("%w: clock and value transfer are required", domain.ErrInvalidInput)
	}

	return &Engine{
		clock:         clock,
		transfer:      transfer,
		characters:    characters,
		publisher:     publisher,
		newID:         uuid.NewString,
		periodSeconds: uint64(cfg.PeriodDuration / time.Second),
		states:        make(map[string]domain.PlayerPeriodState),
		boards:        make(map[uint64]*leaderboard.Board),
		rewards:       cfg.Rewards,
		multipliers:   multiplier.NewRegistry(),
	}, nil
}

// periodAt maps a unix timestamp to its period index
func (e *Engine) periodAt(now int64) uint64 {
	if now < 0 {
		return 0
	}
	return uint64(now) / e.periodSeconds
}

// CurrentPeriod returns the period the clock is in
func (e *Engine) CurrentPeriod() uint64 {
	return e.periodAt(e.clock.Now())
}

// LastKnownPeriod returns the global period marker
func (e *Engine) LastKnownPeriod() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastKnown
}

// PeriodBounds returns the start and end of period
func (e *Engine) PeriodBounds(period uint64) (time.Time, time.Time) {
	start := int64(period * e.periodSeconds)
	return time.Unix(start, 0).UTC(), time.Unix(start+int64(e.periodSeconds), 0).UTC()
}

// Leaderboard returns a snapshot of the period's board. A period nobody scored in
// has an empty, unsettled board.
func (e *Engine) Leaderboard(period uint64) domain.LeaderboardSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	board, ok := e.boards[period]
	if !ok {
		return domain.LeaderboardSnapshot{Period: period, Entries: []domain.LeaderboardEntry{}}
	}
	return board.Snapshot()
}

// CurrentLeaderboard returns a snapshot of the board for the clock's period
func (e *Engine) CurrentLeaderboard() domain.LeaderboardSnapshot {
	return e.Leaderboard(e.CurrentPeriod())
}

// PoolBalance returns the reward pool balance
func (e *Engine) PoolBalance() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool
}

// PlayerState returns the player's score state; ok is false if they never scored
func (e *Engine) PlayerState(player string) (domain.PlayerPeriodState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state, ok := e.states[player]
	return state, ok
}

// RewardConfig returns the current settlement parameters
func (e *Engine) RewardConfig() domain.RewardConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rewards
}

// Multiplier returns the player's admin-set bonuses
func (e *Engine) Multiplier(player string) domain.RewardMultiplier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.multipliers.Get(player)
}

// EffectiveWeight returns the player's reward weight for the clock's period.
// A failed asset lookup counts as not owning a qualifying asset.
func (e *Engine) EffectiveWeight(ctx context.Context, player string) uint64 {
	period := e.CurrentPeriod()

	e.mu.Lock()
	defer e.mu.Unlock()

	owns, err := e.ownsQualifyingAsset(ctx, player)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgAssetLookupFailed, "player", player, "error", err)
		owns = false
	}
	return e.weightLocked(player, owns, e.stateRef(player), period)
}

func (e *Engine) weightLocked(player string, owns bool, state *domain.PlayerPeriodState, period uint64) uint64 {
	return multiplier.EffectiveWeight(multiplier.Factors{
		Multiplier:             e.multipliers.Get(player),
		OwnsQualifyingAsset:    owns,
		State:                  state,
		Period:                 period,
		ParticipationThreshold: e.rewards.ParticipationThreshold,
	})
}

func (e *Engine) stateRef(player string) *domain.PlayerPeriodState {
	state, ok := e.states[player]
	if !ok {
		return nil
	}
	return &state
}

func (e *Engine) ownsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	if e.characters == nil {
		return false, nil
	}
	return e.characters.OwnsQualifyingAsset(ctx, player)
}

// boardLocked returns the period's board, creating it on first use
func (e *Engine) boardLocked(period uint64) *leaderboard.Board {
	board, ok := e.boards[period]
	if !ok {
		board = leaderboard.New(period)
		e.boards[period] = board
	}
	return board
}

func (e *Engine) publish(ctx context.Context, events []event.Event) {
	if e.publisher == nil {
		return
	}
	for _, evt := range events {
		e.publisher.PublishWithRetry(ctx, evt)
	}
}
