package season

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/utils"
)

// Settle pays out the period's rewards to its eligible top players.
//
// Settlement either pays every winner, debits the pool and marks the period settled,
// or fails and changes nothing. A settled period can never be settled again.
func (e *Engine) Settle(ctx context.Context, period uint64) (*domain.Distribution, error) {
	return e.settle(ctx, period, false)
}

// ForceSettle is the administrative form of Settle. It only accepts periods that
// have already ended.
func (e *Engine) ForceSettle(ctx context.Context, period uint64) (*domain.Distribution, error) {
	if current := e.CurrentPeriod(); period >= current {
		return nil, fmt.Errorf("%w: period %d, current period %d", domain.ErrFuturePeriodSettlement, period, current)
	}
	return e.settle(ctx, period, true)
}

func (e *Engine) settle(ctx context.Context, period uint64, forced bool) (*domain.Distribution, error) {
	var events []event.Event

	e.mu.Lock()
	dist, err := e.settleLocked(ctx, period, forced)
	if err == nil {
		events = append(events, event.NewPeriodSettledEvent(*dist))
	}
	e.mu.Unlock()

	e.publish(ctx, events)
	return dist, err
}

// settleLocked computes and pays the distribution for period. Callers hold e.mu.
func (e *Engine) settleLocked(ctx context.Context, period uint64, forced bool) (*domain.Distribution, error) {
	log := logger.FromContext(ctx)

	board, ok := e.boards[period]
	if ok && board.Settled() {
		return nil, fmt.Errorf("%w: period %d", domain.ErrAlreadySettled, period)
	}
	if !ok {
		return nil, fmt.Errorf("%w: period %d has no scores", domain.ErrNoEligiblePlayers, period)
	}

	eligible := eligibleEntries(board.Entries(), e.rewards.MinimumScore)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: period %d", domain.ErrNoEligiblePlayers, period)
	}

	payouts, totalWeight, err := e.weighLocked(ctx, period, eligible)
	if err != nil {
		return nil, err
	}

	budget, err := utils.MulDivFloor(e.pool, e.rewards.RewardPercentage, domain.BasisPoints)
	if err != nil {
		return nil, fmt.Errorf("reward budget: %w", err)
	}

	total, err := allocate(payouts, budget, totalWeight)
	if err != nil {
		return nil, err
	}

	// total <= budget <= pool by construction
	remaining, err := utils.CheckedSub(e.pool, total)
	if err != nil {
		return nil, fmt.Errorf("pool debit: %w", err)
	}

	if err := e.creditWinners(ctx, payouts); err != nil {
		log.Error(LogMsgPayoutFailed, "period", period, "error", err)
		return nil, err
	}

	dist := &domain.Distribution{
		ID:          e.newID(),
		Period:      period,
		PoolBefore:  e.pool,
		Budget:      budget,
		TotalWeight: totalWeight,
		Total:       total,
		Dust:        budget - total,
		Forced:      forced,
		Payouts:     payouts,
		SettledAt:   time.Unix(e.clock.Now(), 0).UTC(),
	}

	e.pool = remaining
	board.MarkSettled()

	log.Info(LogMsgPeriodSettled,
		"period", period,
		"winners", len(payouts),
		"total", total,
		"dust", dist.Dust,
		"pool", e.pool,
		"forced", forced)

	return dist, nil
}

// eligibleEntries returns the ranked prefix of entries scoring at least minimum.
// The first entry below minimum ends the list even if later slots were eligible.
func eligibleEntries(entries []domain.LeaderboardEntry, minimum uint64) []domain.LeaderboardEntry {
	for i, entry := range entries {
		if entry.Score < minimum {
			return entries[:i]
		}
	}
	return entries
}

// weighLocked builds one payout per eligible entry with its effective weight.
// The activity bonus is judged on the score the player made in the settled period.
func (e *Engine) weighLocked(ctx context.Context, period uint64, eligible []domain.LeaderboardEntry) ([]domain.Payout, uint64, error) {
	payouts := make([]domain.Payout, 0, len(eligible))
	var totalWeight uint64

	for _, entry := range eligible {
		owns, err := e.ownsQualifyingAsset(ctx, entry.Player)
		if err != nil {
			return nil, 0, fmt.Errorf("asset lookup for %s: %w", entry.Player, err)
		}

		state := domain.PlayerPeriodState{Period: period, Score: entry.Score}
		weight := e.weightLocked(entry.Player, owns, &state, period)

		totalWeight, err = utils.CheckedAdd(totalWeight, weight)
		if err != nil {
			return nil, 0, fmt.Errorf("total weight: %w", err)
		}

		payouts = append(payouts, domain.Payout{
			Position: entry.Position,
			Player:   entry.Player,
			Score:    entry.Score,
			Weight:   weight,
		})
	}

	return payouts, totalWeight, nil
}

// allocate fills in each payout's share and amount and returns their sum.
// share = floor(weight*10000/totalWeight), amount = floor(budget*share/10000);
// rounding twice leaves dust that stays in the pool.
func allocate(payouts []domain.Payout, budget, totalWeight uint64) (uint64, error) {
	var total uint64
	for i := range payouts {
		share, err := utils.MulDivFloor(payouts[i].Weight, domain.BasisPoints, totalWeight)
		if err != nil {
			return 0, fmt.Errorf("share for %s: %w", payouts[i].Player, err)
		}
		amount, err := utils.MulDivFloor(budget, share, domain.BasisPoints)
		if err != nil {
			return 0, fmt.Errorf("amount for %s: %w", payouts[i].Player, err)
		}
		total, err = utils.CheckedAdd(total, amount)
		if err != nil {
			return 0, fmt.Errorf("payout total: %w", err)
		}
		payouts[i].Share = share
		payouts[i].Amount = amount
	}
	return total, nil
}

// creditWinners credits every non-zero payout in rank order. Either all credits
// land or none do: a batch transfer is used when available, otherwise credits
// already made are reversed after a failure.
func (e *Engine) creditWinners(ctx context.Context, payouts []domain.Payout) error {
	credits := make([]domain.Payout, 0, len(payouts))
	for _, p := range payouts {
		if p.Amount > 0 {
			credits = append(credits, p)
		}
	}
	if len(credits) == 0 {
		return nil
	}

	if batch, ok := e.transfer.(BatchCrediter); ok {
		if err := batch.CreditBatch(ctx, credits); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
		}
		return nil
	}

	for i, p := range credits {
		if err := e.transfer.Credit(ctx, p.Player, p.Amount); err != nil {
			failure := fmt.Errorf("%w: credit %d to %s: %w", domain.ErrTransferFailed, p.Amount, p.Player, err)
			return errors.Join(failure, e.reverseCredits(ctx, credits[:i]))
		}
	}
	return nil
}

// reverseCredits takes back credits in reverse order
func (e *Engine) reverseCredits(ctx context.Context, credited []domain.Payout) error {
	var errs []error
	for i := len(credited) - 1; i >= 0; i-- {
		p := credited[i]
		if err := e.transfer.DebitFrom(ctx, p.Player, p.Amount); err != nil {
			logger.FromContext(ctx).Error(LogMsgCompensationFailed, "player", p.Player, "amount", p.Amount, "error", err)
			errs = append(errs, fmt.Errorf("reverse credit to %s: %w", p.Player, err))
		}
	}
	return errors.Join(errs...)
}
