package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/osse101/questledger/internal/logger"
)

// Advancer moves the season to the current period, settling the one it leaves
type Advancer interface {
	Advance(ctx context.Context) (bool, error)
	CurrentPeriod() uint64
}

// RolloverWorker periodically advances the season so periods without traffic
// are still settled soon after they end
type RolloverWorker struct {
	advancer Advancer
	schedule string
	cron     *cron.Cron

	mu      sync.Mutex
	started bool
}

// NewRolloverWorker validates the cron schedule and prepares the worker.
// Schedules use the standard five fields or descriptors such as "@every 1m".
func NewRolloverWorker(advancer Advancer, schedule string) (*RolloverWorker, error) {
	c := cron.New(
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)

	w := &RolloverWorker{
		advancer: advancer,
		schedule: schedule,
		cron:     c,
	}

	if _, err := c.AddFunc(schedule, w.tick); err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgInvalidSchedule, schedule, err)
	}
	return w, nil
}

// Start runs one rollover immediately to catch up after downtime, then starts the schedule
func (w *RolloverWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return errors.New(ErrMsgAlreadyStarted)
	}
	w.started = true

	w.tick()
	w.cron.Start()

	logger.Info(LogMsgRolloverScheduled, "schedule", w.schedule, "period", w.advancer.CurrentPeriod())
	return nil
}

func (w *RolloverWorker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), RolloverTimeout)
	defer cancel()
	_, _ = w.RunOnce(ctx)
}

// RunOnce advances the season now and reports whether the period marker moved
func (w *RolloverWorker) RunOnce(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	advanced, err := w.advancer.Advance(ctx)
	if err != nil {
		log.Error(LogMsgRolloverFailed, "error", err)
		return false, err
	}
	if advanced {
		log.Info(LogMsgRolloverAdvanced, "period", w.advancer.CurrentPeriod())
	}
	return advanced, nil
}

// Shutdown stops the schedule and waits for a running rollover to finish
func (w *RolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverShuttingDown)

	stopped := w.cron.Stop()

	select {
	case <-stopped.Done():
		log.Info(LogMsgRolloverStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRolloverStopTimeout)
		return ctx.Err()
	}
}

// cronLogger routes cron's internal logging into slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
