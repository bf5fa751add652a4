package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RankChanged, s.handleRankChanged)
	s.bus.Subscribe(event.PeriodSettled, s.handlePeriodSettled)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{string(event.RankChanged), string(event.PeriodSettled)})
}

func (s *Subscriber) handleRankChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.RankChangedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeRankChanged, RankChangedPayload{
		Player:   payload.Player,
		Period:   payload.Period,
		Position: payload.Position,
		Score:    payload.Score,
	})

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeRankChanged,
		"player", payload.Player,
		"position", payload.Position)
	return nil
}

func (s *Subscriber) handlePeriodSettled(_ context.Context, evt event.Event) error {
	dist, err := event.DecodePayload[domain.Distribution](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	ssePayload := PeriodSettledPayload{
		Period:  dist.Period,
		Forced:  dist.Forced,
		Total:   dist.Total,
		Dust:    dist.Dust,
		Winners: make([]WinnerInfo, 0, len(dist.Payouts)),
	}
	for _, p := range dist.Payouts {
		ssePayload.Winners = append(ssePayload.Winners, WinnerInfo{
			Position: p.Position,
			Player:   p.Player,
			Amount:   p.Amount,
		})
	}

	s.hub.Broadcast(EventTypePeriodSettled, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypePeriodSettled,
		"period", dist.Period,
		"winners", len(ssePayload.Winners))
	return nil
}
