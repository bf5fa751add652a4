package season

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/utils"
)

// ApplyPoints adds points to the player's score for the current period and re-ranks
// the period leaderboard.
//
// The first call to cross a period boundary settles the previous period before the
// new period accepts any score. If that settlement fails on a transfer or arithmetic
// error the call fails and nothing changes.
func (e *Engine) ApplyPoints(ctx context.Context, player string, points uint64) (domain.ScoreResult, error) {
	if player == "" {
		return domain.ScoreResult{}, fmt.Errorf("%w: player is required", domain.ErrInvalidInput)
	}

	var events []event.Event
	e.mu.Lock()
	result, err := e.applyPointsLocked(ctx, player, points, &events)
	e.mu.Unlock()

	e.publish(ctx, events)
	return result, err
}

func (e *Engine) applyPointsLocked(ctx context.Context, player string, points uint64, events *[]event.Event) (domain.ScoreResult, error) {
	current, err := e.rolloverLocked(ctx, events)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	score := points
	if state, ok := e.states[player]; ok && state.Period == current {
		score, err = utils.CheckedAdd(state.Score, points)
		if err != nil {
			return domain.ScoreResult{}, fmt.Errorf("score for %s: %w", player, err)
		}
	}

	e.states[player] = domain.PlayerPeriodState{Period: current, Score: score}
	pos, changed := e.boardLocked(current).Rank(player, score)

	*events = append(*events, event.NewScoreChangedEvent(player, current, points, score))
	if changed {
		*events = append(*events, event.NewRankChangedEvent(player, current, pos, score))
	}

	return domain.ScoreResult{
		Player:      player,
		Period:      current,
		Score:       score,
		Rank:        pos,
		RankChanged: changed,
	}, nil
}

// Advance performs the rollover step of ApplyPoints without scoring anything.
// It reports whether the period marker moved.
func (e *Engine) Advance(ctx context.Context) (bool, error) {
	var events []event.Event
	e.mu.Lock()
	before := e.lastKnown
	after, err := e.rolloverLocked(ctx, &events)
	e.mu.Unlock()

	e.publish(ctx, events)
	if err != nil {
		return false, err
	}
	return after != before, nil
}

// rolloverLocked moves the period marker up to the clock's period, settling the
// period it leaves first. It returns the period new scores belong to.
//
// Only the immediately preceding marker period is settled: periods skipped entirely
// had no board to settle. Period zero is never settled automatically. A period with
// no eligible players is left unsettled so it can still be force-settled.
func (e *Engine) rolloverLocked(ctx context.Context, events *[]event.Event) (uint64, error) {
	current := e.CurrentPeriod()
	if current <= e.lastKnown {
		// the clock never takes a period back
		return e.lastKnown, nil
	}

	log := logger.FromContext(ctx)
	previous := e.lastKnown

	if previous != 0 {
		board, ok := e.boards[previous]
		if !ok || !board.Settled() {
			dist, err := e.settleLocked(ctx, previous, false)
			switch {
			case err == nil:
				*events = append(*events, event.NewPeriodSettledEvent(*dist))
			case errors.Is(err, domain.ErrNoEligiblePlayers):
				log.Info(LogMsgRolloverNoWinners, "period", previous)
			default:
				log.Error(LogMsgRolloverSettleFailed, "period", previous, "error", err)
				return 0, fmt.Errorf("settle period %d on rollover: %w", previous, err)
			}
		}
	}

	e.lastKnown = current
	*events = append(*events, event.NewPeriodRolledOverEvent(previous, current))
	log.Info(LogMsgPeriodRolledOver, "from", previous, "to", current)

	return current, nil
}
