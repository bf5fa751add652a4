package domain

// QuestTemplate represents a quest definition from the quest catalog
type QuestTemplate struct {
	QuestKey    string `json:"quest_key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BaseReward  uint64 `json:"base_reward"`
	MinLevel    uint64 `json:"min_level"`
}

// QuestCatalog is the on-disk quest catalog format
type QuestCatalog struct {
	Version string          `json:"version"`
	Quests  []QuestTemplate `json:"quests"`
}

// RewardResult describes a paid quest or battle reward
type RewardResult struct {
	Player      string      `json:"player"`
	CharacterID string      `json:"character_id"`
	Reward      uint64      `json:"reward"`
	Fee         uint64      `json:"fee"`
	Paid        uint64      `json:"paid"`
	Score       ScoreResult `json:"score"`
}
