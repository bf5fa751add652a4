package metrics

import (
	"context"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ScoreChanged,
		event.RankChanged,
		event.PeriodSettled,
		event.PeriodRolledOver,
		event.PoolDeposit,
		event.QuestCompleted,
		event.BattleCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics.
// Undecodable payloads are logged and skipped so metrics never block publishing.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ScoreChanged:
		var p domain.ScoreChangedPayload
		if p, err = event.DecodePayload[domain.ScoreChangedPayload](evt.Payload); err == nil {
			PointsApplied.Add(float64(p.Points))
		}

	case event.RankChanged:
		RankChanges.Inc()

	case event.PeriodSettled:
		var d domain.Distribution
		if d, err = event.DecodePayload[domain.Distribution](evt.Payload); err == nil {
			e.recordSettlement(d)
		}

	case event.PeriodRolledOver:
		var p domain.PeriodRolledOverPayload
		if p, err = event.DecodePayload[domain.PeriodRolledOverPayload](evt.Payload); err == nil {
			CurrentPeriod.Set(float64(p.To))
		}

	case event.PoolDeposit:
		var p domain.PoolDepositPayload
		if p, err = event.DecodePayload[domain.PoolDepositPayload](evt.Payload); err == nil {
			PoolDeposits.WithLabelValues(p.Source).Add(float64(p.Amount))
			RewardPoolBalance.Set(float64(p.Balance))
		}

	case event.QuestCompleted, event.BattleCompleted:
		var p domain.RewardPayload
		if p, err = event.DecodePayload[domain.RewardPayload](evt.Payload); err == nil {
			kind := KindQuest
			if evt.Type == event.BattleCompleted {
				kind = KindBattle
			}
			RewardsPaid.WithLabelValues(kind).Add(float64(p.Reward))
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) recordSettlement(d domain.Distribution) {
	result := ResultScheduled
	if d.Forced {
		result = ResultForced
	}
	SettlementsTotal.WithLabelValues(result).Inc()

	for _, p := range d.Payouts {
		if p.Amount > 0 {
			PayoutsTotal.Inc()
		}
	}
	PayoutAmountTotal.Add(float64(d.Total))

	if d.PoolBefore >= d.Total {
		RewardPoolBalance.Set(float64(d.PoolBefore - d.Total))
	}
}
