package quest

// Reward tuning
const (
	// QuestLevelBonusBps is the extra quest reward per character level (5%)
	QuestLevelBonusBps = 500

	// BattleBaseReward is paid for every battle
	BattleBaseReward = 50

	// BattleRewardPerPower is added per point of character power
	BattleRewardPerPower = 1

	// BattleLossShareBps is the share of the reward paid for a lost battle (20%)
	BattleLossShareBps = 2000
)

// CatalogSchemaPath is the JSON schema every catalog file must satisfy
const CatalogSchemaPath = "configs/schemas/quests.schema.json"

// Error Messages
const (
	ErrMsgFailedToReadCatalog   = "failed to read quest catalog"
	ErrMsgFailedToParseCatalog  = "failed to parse quest catalog"
	ErrMsgFailedToLoadCharacter = "failed to load character"
	ErrMsgFailedToScoreReward   = "failed to score reward"
)

// Log Messages
const (
	LogMsgQuestCompleted       = "Quest completed"
	LogMsgBattleCompleted      = "Battle completed"
	LogMsgRewardReversalFailed = "Failed to reverse reward credit"
	LogMsgFeeSkimFailed        = "Failed to add reward fee to pool"
)
