package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/questledger/internal/character"
	"github.com/osse101/questledger/internal/config"
	"github.com/osse101/questledger/internal/database"
	"github.com/osse101/questledger/internal/database/postgres"
	"github.com/osse101/questledger/internal/ledger"
	"github.com/osse101/questledger/internal/repository"
)

// Repositories holds the storage the season engine and services run on.
// DB is nil for in-memory storage.
type Repositories struct {
	Accounts   repository.Accounts
	Characters *character.CachedRepository
	History    repository.History
	DB         *pgxpool.Pool
}

// InitializeRepositories builds the storage selected by cfg.Storage.
// For postgres it connects and applies pending migrations first.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	var (
		accounts   repository.Accounts
		characters repository.Characters
		history    repository.History
		pool       *pgxpool.Pool
	)

	switch cfg.Storage {
	case config.StorageMemory:
		accounts = ledger.NewMemoryAccounts()
		characters = ledger.NewMemoryCharacters()
		history = ledger.NewMemoryHistory()

	case config.StoragePostgres:
		var err error
		pool, err = database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}

		applied, err := database.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}
		slog.Info(LogMsgMigrationsApplied, "count", applied)

		accounts = postgres.NewAccountRepository(pool)
		characters = postgres.NewCharacterRepository(pool)
		history = postgres.NewHistoryRepository(pool)

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorage, cfg.Storage)
	}

	slog.Info(LogMsgStorageInitialized,
		"storage", cfg.Storage,
		"character_cache_size", cfg.CharacterCacheSize,
		"character_cache_ttl", cfg.CharacterCacheTTL)

	return &Repositories{
		Accounts:   accounts,
		Characters: character.NewCachedRepository(characters, cfg.CharacterCacheSize, cfg.CharacterCacheTTL),
		History:    history,
		DB:         pool,
	}, nil
}

// Close releases the database pool, if any
func (r *Repositories) Close() {
	if r.DB != nil {
		r.DB.Close()
	}
}
