package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	// LogDir receives one log file per session in addition to stdout
	LogDir string

	// Storage selects the ledger backend: "memory" or "postgres"
	Storage           string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Season economy
	PeriodDuration         time.Duration
	RewardPercentageBps    uint64
	MinScoreForRewards     uint64
	ParticipationThreshold uint64
	FeeBps                 uint64
	RolloverSchedule       string

	CharacterCacheSize int
	CharacterCacheTTL  time.Duration

	EventMaxRetries  int
	EventRetryDelay  time.Duration
	DeadLetterPath   string
	QuestCatalogPath string

	WorkerCount     int
	WorkerQueueSize int

	// Discord webhook for settlement announcements; disabled when either is empty
	DiscordWebhookID    string
	DiscordWebhookToken string

	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),

		Storage:           strings.ToLower(getEnv("STORAGE", StorageMemory)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "questledger"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		RolloverSchedule: getEnv("ROLLOVER_SCHEDULE", DefaultRolloverSchedule),

		CharacterCacheSize: getEnvAsInt("CHARACTER_CACHE_SIZE", DefaultCharacterCacheSize),
		CharacterCacheTTL:  getEnvAsDuration("CHARACTER_CACHE_TTL", DefaultCharacterCacheTTL),

		EventMaxRetries:  getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:  getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		DeadLetterPath:   getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		QuestCatalogPath: getEnv("QUEST_CATALOG_PATH", ConfigPathQuestCatalog),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.PeriodDuration, err = time.ParseDuration(getEnv("PERIOD_DURATION", DefaultPeriodDuration)); err != nil {
		return nil, fmt.Errorf("invalid PERIOD_DURATION value: %w", err)
	}

	numeric := []struct {
		key    string
		target *uint64
		def    uint64
	}{
		{"REWARD_PERCENTAGE_BPS", &cfg.RewardPercentageBps, DefaultRewardPercentageBps},
		{"MIN_SCORE_FOR_REWARDS", &cfg.MinScoreForRewards, 0},
		{"PARTICIPATION_THRESHOLD", &cfg.ParticipationThreshold, DefaultParticipationThreshold},
		{"FEE_BPS", &cfg.FeeBps, DefaultFeeBps},
	}
	for _, n := range numeric {
		if *n.target, err = getEnvAsUint64(n.key, n.def); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		return fmt.Errorf("invalid STORAGE value %q: must be %q or %q", c.Storage, StorageMemory, StoragePostgres)
	}
	if c.PeriodDuration < time.Second {
		return fmt.Errorf("invalid PERIOD_DURATION value %s: must be at least 1s", c.PeriodDuration)
	}
	if c.RewardPercentageBps > MaxRewardPercentageBps {
		return fmt.Errorf("invalid REWARD_PERCENTAGE_BPS value %d: must not exceed %d", c.RewardPercentageBps, MaxRewardPercentageBps)
	}
	if c.FeeBps > MaxFeeBps {
		return fmt.Errorf("invalid FEE_BPS value %d: must not exceed %d", c.FeeBps, MaxFeeBps)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to the default
// when it is unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a duration environment variable, falling back to the
// default when it is unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsUint64 parses an unsigned environment variable. Unlike the other helpers
// a malformed value is an error, since these values move money.
func getEnvAsUint64(key string, defaultValue uint64) (uint64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

// getEnvAsList splits a comma separated environment variable, dropping empty items
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordEnabled reports whether settlement announcements are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
