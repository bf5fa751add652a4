package season

import (
	"context"
	"fmt"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/multiplier"
	"github.com/osse101/questledger/internal/utils"
)

// Deposit moves amount from the depositor's account into the reward pool and
// returns the new pool balance
func (e *Engine) Deposit(ctx context.Context, from string, amount uint64) (uint64, error) {
	if from == "" || amount == 0 {
		return 0, fmt.Errorf("%w: depositor and a positive amount are required", domain.ErrInvalidInput)
	}

	e.mu.Lock()
	balance, err := utils.CheckedAdd(e.pool, amount)
	if err != nil {
		e.mu.Unlock()
		return 0, fmt.Errorf("pool deposit: %w", err)
	}
	if err := e.transfer.DebitFrom(ctx, from, amount); err != nil {
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: debit %d from %s: %w", domain.ErrTransferFailed, amount, from, err)
	}
	e.pool = balance
	e.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgPoolDeposit, "from", from, "amount", amount, "pool", balance)
	e.publish(ctx, []event.Event{event.NewPoolDepositEvent(domain.DepositSourceExternal, from, amount, balance)})
	return balance, nil
}

// SkimFee adds a fee taken from a quest or battle reward to the pool and returns
// the new pool balance
func (e *Engine) SkimFee(ctx context.Context, amount uint64) (uint64, error) {
	e.mu.Lock()
	if amount == 0 {
		balance := e.pool
		e.mu.Unlock()
		return balance, nil
	}
	balance, err := utils.CheckedAdd(e.pool, amount)
	if err != nil {
		e.mu.Unlock()
		return 0, fmt.Errorf("fee skim: %w", err)
	}
	e.pool = balance
	e.mu.Unlock()

	e.publish(ctx, []event.Event{event.NewPoolDepositEvent(domain.DepositSourceFee, "", amount, balance)})
	return balance, nil
}

// UpdateRewardConfig replaces the settlement parameters. The reward percentage is
// capped at domain.MaxRewardPercentage here, not at settlement time.
func (e *Engine) UpdateRewardConfig(ctx context.Context, cfg domain.RewardConfig) error {
	if cfg.RewardPercentage > domain.MaxRewardPercentage {
		return fmt.Errorf("%w: %d bps, maximum %d", domain.ErrPercentageTooHigh, cfg.RewardPercentage, domain.MaxRewardPercentage)
	}

	e.mu.Lock()
	e.rewards = cfg
	e.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRewardConfigUpdated,
		"reward_percentage", cfg.RewardPercentage,
		"minimum_score", cfg.MinimumScore,
		"participation_threshold", cfg.ParticipationThreshold)
	return nil
}

// SetRewardPercentage sets the share of the pool paid per settlement, in basis points
func (e *Engine) SetRewardPercentage(ctx context.Context, bps uint64) error {
	cfg := e.RewardConfig()
	cfg.RewardPercentage = bps
	return e.UpdateRewardConfig(ctx, cfg)
}

// SetMinimumScore sets the score floor for reward eligibility
func (e *Engine) SetMinimumScore(ctx context.Context, score uint64) error {
	cfg := e.RewardConfig()
	cfg.MinimumScore = score
	return e.UpdateRewardConfig(ctx, cfg)
}

// SetParticipationThreshold sets the period score that unlocks the activity bonus
func (e *Engine) SetParticipationThreshold(ctx context.Context, score uint64) error {
	cfg := e.RewardConfig()
	cfg.ParticipationThreshold = score
	return e.UpdateRewardConfig(ctx, cfg)
}

// SetMultiplier stores the player's bonuses after checking their caps
func (e *Engine) SetMultiplier(ctx context.Context, player string, m domain.RewardMultiplier) error {
	if player == "" {
		return fmt.Errorf("%w: player is required", domain.ErrInvalidInput)
	}
	if err := multiplier.Validate(m); err != nil {
		return err
	}

	e.mu.Lock()
	err := e.multipliers.Set(player, m)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgMultiplierUpdated, "player", player, "nft", m.NFT, "activity", m.Activity)
	return nil
}
