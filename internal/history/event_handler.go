package history

import (
	"context"
	"fmt"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
)

// EventHandler records settlements as they are published
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new history event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.PeriodSettled, h.HandlePeriodSettled)
}

// HandlePeriodSettled stores the distribution carried by a period.settled event.
// A returned error makes the resilient publisher retry the event.
func (h *EventHandler) HandlePeriodSettled(ctx context.Context, evt event.Event) error {
	dist, err := event.DecodePayload[domain.Distribution](evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSettlement, err)
	}
	return h.service.Record(ctx, dist)
}
