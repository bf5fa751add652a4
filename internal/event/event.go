package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/questledger/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Ledger event types
const (
	ScoreChanged     Type = domain.EventTypeScoreChanged
	RankChanged      Type = domain.EventTypeRankChanged
	PeriodSettled    Type = domain.EventTypePeriodSettled
	PeriodRolledOver Type = domain.EventTypePeriodRolledOver
	PoolDeposit      Type = domain.EventTypePoolDeposit
	QuestCompleted   Type = domain.EventTypeQuestCompleted
	BattleCompleted  Type = domain.EventTypeBattleCompleted
)

// Type-safe event constructors

// NewScoreChangedEvent creates a score.changed event
func NewScoreChangedEvent(player string, period, points, score uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ScoreChanged,
		Payload: domain.ScoreChangedPayload{
			Player: player,
			Period: period,
			Points: points,
			Score:  score,
		},
	}
}

// NewRankChangedEvent creates a rank.changed event
func NewRankChangedEvent(player string, period uint64, position int, score uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RankChanged,
		Payload: domain.RankChangedPayload{
			Player:   player,
			Period:   period,
			Position: position,
			Score:    score,
		},
	}
}

// NewPeriodSettledEvent creates a period.settled event carrying the full distribution
func NewPeriodSettledEvent(dist domain.Distribution) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PeriodSettled,
		Payload: dist,
		Metadata: map[string]interface{}{
			"settlement_id": dist.ID,
			"forced":        dist.Forced,
		},
	}
}

// NewPeriodRolledOverEvent creates a period.rolled_over event
func NewPeriodRolledOverEvent(from, to uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PeriodRolledOver,
		Payload: domain.PeriodRolledOverPayload{From: from, To: to},
	}
}

// NewPoolDepositEvent creates a pool.deposit event
func NewPoolDepositEvent(source, account string, amount, balance uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PoolDeposit,
		Payload: domain.PoolDepositPayload{
			Source:  source,
			Account: account,
			Amount:  amount,
			Balance: balance,
		},
	}
}

// NewRewardEvent creates a quest.completed or battle.completed event
func NewRewardEvent(eventType Type, payload domain.RewardPayload) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
