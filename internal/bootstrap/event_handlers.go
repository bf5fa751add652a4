package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/questledger/internal/config"
	"github.com/osse101/questledger/internal/discord"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/history"
	"github.com/osse101/questledger/internal/metrics"
	"github.com/osse101/questledger/internal/sse"
	"github.com/osse101/questledger/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus       event.Bus
	HistoryService history.Service
	SSEHub         *sse.Hub
	// JobPool runs Discord webhook posts off the publishing goroutine
	JobPool *worker.Pool
	Config  *config.Config
	// Announcer overrides the Discord announcer built from Config
	Announcer *discord.Announcer
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// settlement history, metrics, the SSE bridge and the Discord announcer.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	history.NewEventHandler(deps.HistoryService).Register(deps.EventBus)
	slog.Info(LogMsgHistoryRecorderRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	announcer := deps.Announcer
	if announcer == nil && deps.Config != nil && deps.Config.DiscordEnabled() {
		var err error
		announcer, err = discord.NewAnnouncer(deps.Config.DiscordWebhookID, deps.Config.DiscordWebhookToken)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateAnnouncer, err)
		}
	}
	if announcer == nil {
		slog.Info(LogMsgDiscordAnnouncerDisabled)
		return nil
	}

	if deps.JobPool != nil {
		announcer.WithQueue(deps.JobPool)
	}
	announcer.Register(deps.EventBus)
	return nil
}
