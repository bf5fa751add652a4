// Package quest pays rewards for completed quests and battles and feeds them into
// the season's scoring as points.
package quest

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/questledger/internal/concurrency"
	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/utils"
)

// Service pays quest and battle rewards
type Service interface {
	Catalog() []domain.QuestTemplate
	CompleteQuest(ctx context.Context, player, characterID, questKey string) (*domain.RewardResult, error)
	CompleteBattle(ctx context.Context, player, characterID string, opponentPower uint64, won bool) (*domain.RewardResult, error)
}

// Scorer is the part of the season engine rewards flow into
type Scorer interface {
	ApplyPoints(ctx context.Context, player string, points uint64) (domain.ScoreResult, error)
	SkimFee(ctx context.Context, amount uint64) (uint64, error)
}

// ValueTransfer pays the player's share of a reward
type ValueTransfer interface {
	Credit(ctx context.Context, account string, amount uint64) error
	DebitFrom(ctx context.Context, account string, amount uint64) error
}

// CharacterData looks up the character a reward is earned with
type CharacterData interface {
	LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error)
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

type service struct {
	scorer     Scorer
	transfer   ValueTransfer
	characters CharacterData
	publisher  EventPublisher
	locks      *concurrency.LockManager

	feeBps  uint64
	catalog []domain.QuestTemplate
	byKey   map[string]domain.QuestTemplate
}

// NewService creates a quest service over the given catalog.
// feeBps is the share of every reward diverted to the reward pool.
func NewService(
	catalog []domain.QuestTemplate,
	feeBps uint64,
	scorer Scorer,
	transfer ValueTransfer,
	characters CharacterData,
	publisher EventPublisher,
) (Service, error) {
	if feeBps > domain.BasisPoints {
		return nil, fmt.Errorf("%w: fee %d bps exceeds %d", domain.ErrInvalidInput, feeBps, domain.BasisPoints)
	}
	if scorer == nil || transfer == nil || characters == nil {
		return nil, fmt.Errorf("%w: scorer, transfer and character data are required", domain.ErrInvalidInput)
	}

	byKey := make(map[string]domain.QuestTemplate, len(catalog))
	for _, q := range catalog {
		byKey[q.QuestKey] = q
	}

	return &service{
		scorer:     scorer,
		transfer:   transfer,
		characters: characters,
		publisher:  publisher,
		locks:      concurrency.NewLockManager(),
		feeBps:     feeBps,
		catalog:    append([]domain.QuestTemplate(nil), catalog...),
		byKey:      byKey,
	}, nil
}

// Catalog returns the available quests
func (s *service) Catalog() []domain.QuestTemplate {
	return append([]domain.QuestTemplate(nil), s.catalog...)
}

// CompleteQuest pays the quest reward, scaled up by the character's level
func (s *service) CompleteQuest(ctx context.Context, player, characterID, questKey string) (*domain.RewardResult, error) {
	tmpl, ok := s.byKey[questKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questKey)
	}

	lock := s.locks.GetLock(player)
	lock.Lock()
	defer lock.Unlock()

	stats, err := s.character(ctx, player, characterID)
	if err != nil {
		return nil, err
	}
	if stats.Level < tmpl.MinLevel {
		return nil, fmt.Errorf("%w: %s needs level %d, %s is level %d",
			domain.ErrLevelTooLow, questKey, tmpl.MinLevel, characterID, stats.Level)
	}

	reward, err := QuestReward(tmpl.BaseReward, stats.Level)
	if err != nil {
		return nil, err
	}

	result, err := s.pay(ctx, player, characterID, reward)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgQuestCompleted,
		"player", player, "character_id", characterID, "quest_key", questKey, "reward", reward, "fee", result.Fee)
	s.publish(ctx, event.QuestCompleted, questKey, result)
	return result, nil
}

// CompleteBattle pays a battle reward based on the character's power.
// A lost battle pays BattleLossShareBps of the full reward.
func (s *service) CompleteBattle(ctx context.Context, player, characterID string, opponentPower uint64, won bool) (*domain.RewardResult, error) {
	var result *domain.RewardResult
	err := s.locks.WithLock(player, func() error {
		stats, err := s.character(ctx, player, characterID)
		if err != nil {
			return err
		}

		reward, err := BattleReward(stats.Power, won)
		if err != nil {
			return err
		}

		result, err = s.pay(ctx, player, characterID, reward)
		if err != nil {
			return err
		}

		logger.FromContext(ctx).Info(LogMsgBattleCompleted,
			"player", player, "character_id", characterID, "won", won,
			"power", stats.Power, "opponent_power", opponentPower, "reward", reward)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.BattleCompleted, "", result)
	return result, nil
}

func (s *service) character(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	if player == "" || characterID == "" {
		return nil, fmt.Errorf("%w: player and character id are required", domain.ErrInvalidInput)
	}
	stats, err := s.characters.LevelAndPower(ctx, player, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadCharacter, err)
	}
	if stats == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrCharacterNotFound, player, characterID)
	}
	return stats, nil
}

// pay credits reward minus fee to the player, scores the full reward and moves the
// fee into the pool. A scoring failure reverses the credit.
func (s *service) pay(ctx context.Context, player, characterID string, reward uint64) (*domain.RewardResult, error) {
	log := logger.FromContext(ctx)

	fee, err := utils.BasisPointsOf(reward, s.feeBps)
	if err != nil {
		return nil, err
	}
	paid := reward - fee

	if paid > 0 {
		if err := s.transfer.Credit(ctx, player, paid); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
		}
	}

	score, err := s.scorer.ApplyPoints(ctx, player, reward)
	if err != nil {
		if paid > 0 {
			if rerr := s.transfer.DebitFrom(ctx, player, paid); rerr != nil {
				log.Error(LogMsgRewardReversalFailed, "player", player, "amount", paid, "error", rerr)
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScoreReward, errors.Join(err, rerr))
			}
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScoreReward, err)
	}

	if fee > 0 {
		if _, err := s.scorer.SkimFee(ctx, fee); err != nil {
			log.Warn(LogMsgFeeSkimFailed, "player", player, "fee", fee, "error", err)
		}
	}

	return &domain.RewardResult{
		Player:      player,
		CharacterID: characterID,
		Reward:      reward,
		Fee:         fee,
		Paid:        paid,
		Score:       score,
	}, nil
}

func (s *service) publish(ctx context.Context, eventType event.Type, key string, result *domain.RewardResult) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewRewardEvent(eventType, domain.RewardPayload{
		Player:      result.Player,
		CharacterID: result.CharacterID,
		Key:         key,
		Reward:      result.Reward,
		Fee:         result.Fee,
		Period:      result.Score.Period,
		Score:       result.Score.Score,
	}))
}

// QuestReward returns base * (10000 + level*QuestLevelBonusBps) / 10000
func QuestReward(base, level uint64) (uint64, error) {
	bonus, err := utils.MulDivFloor(level, QuestLevelBonusBps, 1)
	if err != nil {
		return 0, err
	}
	factor, err := utils.CheckedAdd(domain.BasisPoints, bonus)
	if err != nil {
		return 0, err
	}
	return utils.MulDivFloor(base, factor, domain.BasisPoints)
}

// BattleReward returns BattleBaseReward + power*BattleRewardPerPower, reduced to
// BattleLossShareBps of that when the battle was lost
func BattleReward(power uint64, won bool) (uint64, error) {
	perPower, err := utils.MulDivFloor(power, BattleRewardPerPower, 1)
	if err != nil {
		return 0, err
	}
	reward, err := utils.CheckedAdd(BattleBaseReward, perPower)
	if err != nil {
		return 0, err
	}
	if won {
		return reward, nil
	}
	return utils.BasisPointsOf(reward, BattleLossShareBps)
}
