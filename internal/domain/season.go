package domain

import "time"

// PlayerPeriodState is a player's score accumulator for the last period they scored in.
// A player that never scored has no state at all.
type PlayerPeriodState struct {
	Period uint64 `json:"period"`
	Score  uint64 `json:"score"`
}

// LeaderboardEntry is one ranked slot of a period leaderboard
type LeaderboardEntry struct {
	Position int    `json:"position"`
	Player   string `json:"player"`
	Score    uint64 `json:"score"`
}

// LeaderboardSnapshot is a read-only copy of a period leaderboard
type LeaderboardSnapshot struct {
	Period  uint64             `json:"period"`
	Settled bool               `json:"settled"`
	Entries []LeaderboardEntry `json:"entries"`
}

// RewardMultiplier holds the admin-set bonuses of a player, in basis points.
// Staking is reserved and always zero.
type RewardMultiplier struct {
	NFT      uint64 `json:"nft"`
	Activity uint64 `json:"activity"`
	Staking  uint64 `json:"staking"`
}

// RewardConfig holds the admin-tunable settlement parameters
type RewardConfig struct {
	// RewardPercentage is the share of the pool paid per settlement, in basis points
	RewardPercentage uint64 `json:"reward_percentage"`
	// MinimumScore is the score floor for reward eligibility
	MinimumScore uint64 `json:"minimum_score"`
	// ParticipationThreshold is the period score that unlocks the activity bonus
	ParticipationThreshold uint64 `json:"participation_threshold"`
}

// Payout is a single credit instruction issued to a winner
type Payout struct {
	Position int    `json:"position"`
	Player   string `json:"player"`
	Score    uint64 `json:"score"`
	Weight   uint64 `json:"weight"`
	Share    uint64 `json:"share"`
	Amount   uint64 `json:"amount"`
}

// Distribution is the result of settling a period
type Distribution struct {
	ID          string    `json:"id"`
	Period      uint64    `json:"period"`
	PoolBefore  uint64    `json:"pool_before"`
	Budget      uint64    `json:"budget"`
	TotalWeight uint64    `json:"total_weight"`
	Total       uint64    `json:"total"`
	Dust        uint64    `json:"dust"`
	Forced      bool      `json:"forced"`
	Payouts     []Payout  `json:"payouts"`
	SettledAt   time.Time `json:"settled_at"`
}

// ScoreResult is returned when points are applied to a player
type ScoreResult struct {
	Player      string `json:"player"`
	Period      uint64 `json:"period"`
	Score       uint64 `json:"score"`
	Rank        int    `json:"rank"`
	RankChanged bool   `json:"rank_changed"`
}

// CharacterStats are the level and power of a player's character.
// Qualifying characters unlock the NFT bonus for their owner.
type CharacterStats struct {
	CharacterID string `json:"character_id"`
	Level       uint64 `json:"level"`
	Power       uint64 `json:"power"`
	Qualifying  bool   `json:"qualifying"`
}

// Account is a value-transfer account balance
type Account struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance"`
}
