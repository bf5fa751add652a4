package config

import "time"

const (
	// Configuration file paths
	ConfigPathQuestCatalog = "configs/quests.json"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "questledger"
	DefaultVersion     = "dev"
	DefaultLogDir      = "logs"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultPeriodDuration         = "168h"
	DefaultRewardPercentageBps    = 1000
	DefaultParticipationThreshold = 100
	DefaultFeeBps                 = 500
	DefaultRolloverSchedule       = "@every 1m"

	DefaultCharacterCacheSize = 1024
	DefaultCharacterCacheTTL  = 5 * time.Minute

	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"

	DefaultWorkerCount     = 2
	DefaultWorkerQueueSize = 64
)

// Bounds
const (
	MaxRewardPercentageBps = 3000
	MaxFeeBps              = 10000
)
