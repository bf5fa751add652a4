package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "score.changed")
const (
	// EventTypeScoreChanged is published after points are applied to a player
	EventTypeScoreChanged = "score.changed"

	// EventTypeRankChanged is published when a player's leaderboard position changes
	EventTypeRankChanged = "rank.changed"

	// EventTypePeriodSettled is published once a period's rewards are paid out
	EventTypePeriodSettled = "period.settled"

	// EventTypePeriodRolledOver is published when the global period marker advances
	EventTypePeriodRolledOver = "period.rolled_over"

	// EventTypePoolDeposit is published when value enters the reward pool
	EventTypePoolDeposit = "pool.deposit"

	// EventTypeQuestCompleted is published when a quest reward is paid
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeBattleCompleted is published when a battle reward is paid
	EventTypeBattleCompleted = "battle.completed"
)

// Pool deposit sources
const (
	DepositSourceExternal = "external"
	DepositSourceFee      = "fee"
)

// ScoreChangedPayload is the payload of score.changed events
type ScoreChangedPayload struct {
	Player string `json:"player"`
	Period uint64 `json:"period"`
	Points uint64 `json:"points"`
	Score  uint64 `json:"score"`
}

// RankChangedPayload is the payload of rank.changed events
type RankChangedPayload struct {
	Player   string `json:"player"`
	Period   uint64 `json:"period"`
	Position int    `json:"position"`
	Score    uint64 `json:"score"`
}

// PeriodRolledOverPayload is the payload of period.rolled_over events
type PeriodRolledOverPayload struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// PoolDepositPayload is the payload of pool.deposit events
type PoolDepositPayload struct {
	Source  string `json:"source"`
	Account string `json:"account,omitempty"`
	Amount  uint64 `json:"amount"`
	Balance uint64 `json:"balance"`
}

// RewardPayload is the payload of quest.completed and battle.completed events
type RewardPayload struct {
	Player      string `json:"player"`
	CharacterID string `json:"character_id"`
	Key         string `json:"key,omitempty"`
	Reward      uint64 `json:"reward"`
	Fee         uint64 `json:"fee"`
	Period      uint64 `json:"period"`
	Score       uint64 `json:"score"`
}
